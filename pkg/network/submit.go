package network

import (
	"context"

	"github.com/pkg/errors"

	"github.com/solotto/solotto-go/pkg/metrics"
	"github.com/solotto/solotto-go/pkg/solana"
)

// Send submits a signed transaction once. Preflight checks and node-side
// rebroadcasting are disabled, and the client's retry policy is bypassed, so a
// dropped submission is the caller's to resubmit.
func (n *Network) Send(ctx context.Context, txn solana.Transaction) (solana.Signature, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Send")
	defer tracer.End()

	var sig solana.Signature
	if len(txn.Signatures) == 0 || txn.Signatures[0] == sig {
		err := &SubmissionError{Err: errors.New("transaction is not signed")}
		tracer.OnError(err)
		return sig, err
	}

	return n.SendRaw(ctx, txn.Marshal())
}

// SendRaw submits already serialized transaction bytes once.
func (n *Network) SendRaw(ctx context.Context, raw []byte) (solana.Signature, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "SendRaw")
	defer tracer.End()

	maxRetries := uint(0)
	sig, err := n.client.SendRawTransaction(raw, solana.SendTransactionConfig{
		SkipPreflight: true,
		MaxRetries:    &maxRetries,
	})
	if err != nil {
		n.log.WithField("method", "SendRaw").WithError(err).Warn("failure submitting transaction")
		tracer.OnError(err)
		return solana.Signature{}, &SubmissionError{Err: err}
	}

	tracer.AddAttribute("signature", sig.String())
	return sig, nil
}

// SendAndConfirm submits txn and polls for its outcome with the network's
// default poll settings.
func (n *Network) SendAndConfirm(ctx context.Context, txn solana.Transaction, opts ...PollOption) (solana.Signature, *Outcome, error) {
	sig, err := n.Send(ctx, txn)
	if err != nil {
		return sig, nil, err
	}

	outcome, err := n.Poll(ctx, sig, opts...)
	return sig, outcome, err
}
