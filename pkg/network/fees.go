package network

import (
	"context"
	"crypto/ed25519"
	"math"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/solotto/solotto-go/pkg/metrics"
	"github.com/solotto/solotto-go/pkg/solana"
)

const (
	// NoDataPriorityFee replaces an estimate of exactly 1, which the fee
	// service reports when it has no data for the transaction.
	NoDataPriorityFee = 100_000

	// MinPriorityFee is the floor for every estimate, in micro-lamports per
	// compute unit.
	MinPriorityFee = 10_000
)

// EstimatePriorityFee asks the RPC endpoint for a priority fee, in
// micro-lamports per compute unit, for the unsigned transaction built from
// instructions. It never fails: when no estimate can be obtained the failure
// is logged and the no-data fee is used.
func (n *Network) EstimatePriorityFee(
	ctx context.Context,
	payer ed25519.PublicKey,
	priority PriorityLevel,
	instructions []solana.Instruction,
	blockhash solana.Blockhash,
	lookupTables []solana.AddressLookupTable,
) uint64 {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "EstimatePriorityFee")
	defer tracer.End()

	log := n.log.WithField("method", "EstimatePriorityFee").WithField("priority", priority.normalize())

	txn := solana.NewV0Transaction(payer, lookupTables, instructions)
	txn.SetBlockhash(blockhash)

	raw, err := n.client.GetPriorityFeeEstimate(txn, string(priority.normalize()))
	if err == nil && (math.IsNaN(raw) || math.IsInf(raw, 0)) {
		err = errors.Errorf("unusable estimate: %v", raw)
	}
	if err != nil {
		log.WithError(errors.Wrap(ErrEstimationFailed, err.Error())).Warn("using fallback priority fee")
		tracer.OnError(err)
		return NoDataPriorityFee
	}

	fee := correctPriorityFee(truncateEstimate(raw))
	tracer.AddAttribute("fee", fee)
	return fee
}

// truncateEstimate drops the fractional part of raw, saturating at
// math.MaxInt64.
func truncateEstimate(raw float64) int64 {
	if raw >= math.MaxInt64 {
		return math.MaxInt64
	}
	return decimal.NewFromFloat(raw).IntPart()
}

// correctPriorityFee truncates an estimate into the range the builder will
// pay: the no-data marker becomes NoDataPriorityFee and anything below
// MinPriorityFee is raised to it.
func correctPriorityFee(raw int64) uint64 {
	if raw == 1 {
		raw = NoDataPriorityFee
	}
	if raw < MinPriorityFee {
		raw = MinPriorityFee
	}
	return uint64(raw)
}
