package network

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mr-tron/base58"

	"github.com/solotto/solotto-go/pkg/metrics"
	"github.com/solotto/solotto-go/pkg/solana"
)

const pollDurationMetricName = "Network/poll_duration_ms"

type OutcomeKind uint8

const (
	OutcomeFinalized OutcomeKind = iota
	OutcomeProgramError
	OutcomeTimeout
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeFinalized:
		return "finalized"
	case OutcomeProgramError:
		return "program_error"
	case OutcomeTimeout:
		return "timeout"
	}
	return "unknown"
}

// Outcome is how a poll for a signature ended. Message carries the
// human-readable result: "finalized", "program error!" or
// "<seconds> seconds max wait reached".
type Outcome struct {
	Kind      OutcomeKind
	Signature solana.Signature
	Message   string

	// Err is the execution error of a finalized transaction that failed.
	Err *solana.TransactionError
}

func (o *Outcome) String() string {
	return o.Message
}

type pollConfig struct {
	maxAttempts int
	interval    time.Duration
}

type PollOption func(*pollConfig)

// WithMaxAttempts sets how many consecutive ticks without progress are
// allowed before the poll gives up.
func WithMaxAttempts(attempts int) PollOption {
	return func(c *pollConfig) {
		if attempts > 0 {
			c.maxAttempts = attempts
		}
	}
}

// WithInterval sets the time between status checks.
func WithInterval(interval time.Duration) PollOption {
	return func(c *pollConfig) {
		if interval > 0 {
			c.interval = interval
		}
	}
}

// Poll checks the status of sig on every interval until it is finalized or
// the attempt budget runs out.
//
// An unknown status, or a failed status request, counts as no progress. A
// processed or confirmed status restarts the attempt count, so a transaction
// that is moving towards finalization is waited on for as long as it keeps
// moving. The only error returned is the context's.
func (n *Network) Poll(ctx context.Context, sig solana.Signature, opts ...PollOption) (*Outcome, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Poll")
	defer tracer.End()

	cfg := &pollConfig{
		maxAttempts: n.pollAttempts,
		interval:    n.pollInterval,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	log := n.log.WithFields(map[string]interface{}{
		"method":    "Poll",
		"signature": base58.Encode(sig[:]),
	})

	start := time.Now()
	defer func() {
		metrics.RecordDuration(ctx, pollDurationMetricName, time.Since(start))
	}()

	ticker := time.NewTicker(cfg.interval)
	defer ticker.Stop()

	attempt := 1
	for {
		select {
		case <-ctx.Done():
			tracer.OnError(ctx.Err())
			return nil, ctx.Err()
		case <-ticker.C:
		}

		status, err := n.client.GetSignatureStatus(sig)
		if err != nil {
			log.WithError(err).Debug("failure getting signature status")
		}

		switch {
		case err != nil || status == nil || len(status.ConfirmationStatus) == 0:
		case status.ConfirmationStatus == solana.ConfirmationStatusProcessed,
			status.ConfirmationStatus == solana.ConfirmationStatusConfirmed:
			attempt = 1
		case status.Finalized():
			if status.ErrorResult != nil {
				log.WithError(status.ErrorResult).Info("transaction finalized with an error")
				return &Outcome{
					Kind:      OutcomeProgramError,
					Signature: sig,
					Message:   "program error!",
					Err:       status.ErrorResult,
				}, nil
			}

			return &Outcome{
				Kind:      OutcomeFinalized,
				Signature: sig,
				Message:   "finalized",
			}, nil
		}

		attempt++
		if attempt == cfg.maxAttempts+1 {
			waited := time.Duration(cfg.maxAttempts) * cfg.interval
			log.WithField("waited", waited).Info("gave up waiting for finalization")
			return &Outcome{
				Kind:      OutcomeTimeout,
				Signature: sig,
				Message:   fmt.Sprintf("%s seconds max wait reached", strconv.FormatFloat(waited.Seconds(), 'f', -1, 64)),
			}, nil
		}
	}
}
