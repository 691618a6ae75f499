package lotto

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/solotto/solotto-go/pkg/network"
	"github.com/solotto/solotto-go/pkg/solana"
	"github.com/solotto/solotto-go/pkg/solana/lottery"
)

// Result is what a write operation produced. When the transaction was only
// built, Built is set. When it was signed and submitted, Signature and Outcome
// are set, and operations that change the lottery attach its state once the
// transaction is finalized.
type Result struct {
	Built *network.BuiltTransaction

	Submitted bool
	Signature solana.Signature
	Outcome   *network.Outcome

	Lottery *lottery.LotteryState
}

// Finalized reports whether the submitted transaction finalized without an
// execution error.
func (r *Result) Finalized() bool {
	return r.Outcome != nil && r.Outcome.Kind == network.OutcomeFinalized
}

type refreshFunc func(ctx context.Context) (*lottery.LotteryState, error)

// execute builds the transaction for payer. It is submitted only when payer
// can sign and an encoded transaction was not requested.
func (c *Client) execute(
	ctx context.Context,
	payer *Account,
	instructions []solana.Instruction,
	signers []ed25519.PrivateKey,
	memo string,
	encoded bool,
	refresh refreshFunc,
) (*Result, error) {
	req := &network.TransactionRequest{
		Payer:        payer.PublicKey,
		Instructions: instructions,
		Signers:      signers,
		Priority:     network.PriorityLevel(c.conf.priority.Get(ctx)),
		Tolerance:    c.conf.computeTolerance.Get(ctx),
		Serialize:    encoded,
		Encode:       encoded,
		Memo:         memo,
	}

	built, err := c.network.Build(ctx, req)
	if err != nil {
		return nil, err
	}

	if encoded || !payer.CanSign() {
		return &Result{Built: built}, nil
	}

	txn := built.Transaction
	if err := txn.Sign(payer.PrivateKey); err != nil {
		return nil, errors.Wrap(err, "error signing transaction")
	}

	sig, outcome, err := c.network.SendAndConfirm(ctx, txn, c.pollOptions(ctx)...)
	if err != nil {
		return nil, err
	}

	log := c.log.WithField("signature", sig.String()).WithField("outcome", outcome.Kind)
	log.Debug("transaction submitted")

	result := &Result{
		Submitted: true,
		Signature: sig,
		Outcome:   outcome,
	}

	if refresh != nil && result.Finalized() {
		state, err := refresh(ctx)
		if err != nil {
			log.WithError(err).Warn("failure refreshing lottery state")
		} else {
			result.Lottery = state
		}
	}

	return result, nil
}
