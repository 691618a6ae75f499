package network

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/solotto/solotto-go/pkg/solana"
)

var (
	ErrMissingAccount      = errors.New("missing account")
	ErrMissingInstructions = errors.New("missing instructions")
	ErrInvalidTolerance    = errors.New("compute tolerance must be a finite number")

	// ErrEstimationFailed is logged when a priority fee estimate cannot be
	// obtained. The build continues with the fallback fee.
	ErrEstimationFailed = errors.New("priority fee estimation failed")
)

// ValidationError is returned before any network call when a request is
// missing a required field.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// SimulationError is returned when the dry run of a transaction fails. The
// same instructions would fail on-chain, so it is not retryable.
type SimulationError struct {
	Err    *solana.TransactionError
	RawErr string
	Logs   []string
}

func (e *SimulationError) Error() string {
	detail := e.RawErr
	if e.Err != nil {
		detail = e.Err.Error()
	}
	return fmt.Sprintf("there was an error when simulating the transaction: %s", detail)
}

// LogString joins the execution log of the failed simulation.
func (e *SimulationError) LogString() string {
	return strings.Join(e.Logs, "\n")
}

// BuilderError is returned when the builder could not complete a step for a
// reason other than a failed simulation.
type BuilderError struct {
	Message string
	Err     error
}

func (e *BuilderError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *BuilderError) Unwrap() error {
	return e.Err
}

// SubmissionError wraps any failure to hand a transaction to the network.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("failed to submit transaction: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// TransactionError returns the execution error reported by the node, if any.
func (e *SubmissionError) TransactionError() *solana.TransactionError {
	var txErr *solana.TransactionError
	if errors.As(e.Err, &txErr) {
		return txErr
	}
	return nil
}
