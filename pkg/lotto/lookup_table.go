package lotto

import (
	"context"
	"crypto/ed25519"
	"math"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/solotto/solotto-go/pkg/metrics"
	"github.com/solotto/solotto-go/pkg/solana"
	address_lookup_table "github.com/solotto/solotto-go/pkg/solana/addresslookuptable"
)

// GetLookupTable fetches an address lookup table so it can be passed to the
// transaction builder. Deactivated tables are rejected.
func (c *Client) GetLookupTable(ctx context.Context, address ed25519.PublicKey) (*solana.AddressLookupTable, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "GetLookupTable")
	defer tracer.End()

	info, err := c.rpc.GetAccountInfo(address, solana.CommitmentConfirmed)
	if err == solana.ErrNoAccountInfo {
		return nil, ErrLookupTableNotFound
	} else if err != nil {
		tracer.OnError(err)
		return nil, errors.Wrap(err, "error getting lookup table account")
	}

	var account address_lookup_table.AddressLookupTableAccount
	if err := account.Unmarshal(info.Data); err != nil {
		tracer.OnError(err)
		return nil, errors.Wrapf(err, "error decoding lookup table %s", base58.Encode(address))
	}

	if account.DeactivationSlot != math.MaxUint64 {
		return nil, ErrLookupTableInactive
	}

	table := account.ToLookupTable(address)
	return &table, nil
}
