package network

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solotto/solotto-go/pkg/solana"
)

func status(confirmationStatus string) *solana.SignatureStatus {
	return &solana.SignatureStatus{ConfirmationStatus: confirmationStatus}
}

func TestPoll_Finalized(t *testing.T) {
	client := newFakeClient()
	client.statuses = []*solana.SignatureStatus{
		nil,
		status(solana.ConfirmationStatusProcessed),
		status(solana.ConfirmationStatusConfirmed),
		status(solana.ConfirmationStatusFinalized),
	}

	sig := solana.Signature{1}
	outcome, err := New(client).Poll(context.Background(), sig, WithInterval(time.Millisecond))
	require.NoError(t, err)

	assert.Equal(t, OutcomeFinalized, outcome.Kind)
	assert.Equal(t, "finalized", outcome.String())
	assert.Equal(t, sig, outcome.Signature)
	assert.Nil(t, outcome.Err)
	assert.Equal(t, 4, client.statusCalls)
}

func TestPoll_ProgramError(t *testing.T) {
	client := newFakeClient()
	failed := status(solana.ConfirmationStatusFinalized)
	failed.ErrorResult = solana.NewTransactionError(solana.TransactionErrorInstructionError)
	client.statuses = []*solana.SignatureStatus{failed}

	outcome, err := New(client).Poll(context.Background(), solana.Signature{1}, WithInterval(time.Millisecond))
	require.NoError(t, err)

	assert.Equal(t, OutcomeProgramError, outcome.Kind)
	assert.Equal(t, "program error!", outcome.Message)
	assert.Equal(t, failed.ErrorResult, outcome.Err)
}

func TestPoll_Timeout(t *testing.T) {
	client := newFakeClient()

	outcome, err := New(client).Poll(context.Background(), solana.Signature{1}, WithInterval(time.Millisecond), WithMaxAttempts(5))
	require.NoError(t, err)

	assert.Equal(t, OutcomeTimeout, outcome.Kind)
	assert.Equal(t, "0.005 seconds max wait reached", outcome.Message)
	assert.Equal(t, 5, client.statusCalls)
}

func TestPoll_TimeoutMessage(t *testing.T) {
	client := newFakeClient()

	n := New(client, WithPollDefaults(2, 1500*time.Millisecond))
	assert.Equal(t, 2, n.pollAttempts)

	outcome, err := New(client, WithPollDefaults(1, 2*time.Millisecond)).Poll(context.Background(), solana.Signature{1})
	require.NoError(t, err)
	assert.Equal(t, "0.002 seconds max wait reached", outcome.Message)
}

func TestPoll_ProgressResetsAttempts(t *testing.T) {
	client := newFakeClient()
	client.statuses = []*solana.SignatureStatus{
		nil,
		nil,
		status(solana.ConfirmationStatusConfirmed),
		nil,
		nil,
	}

	outcome, err := New(client).Poll(context.Background(), solana.Signature{1}, WithInterval(time.Millisecond), WithMaxAttempts(3))
	require.NoError(t, err)

	// Two misses, a reset by the confirmed status, then two more misses.
	assert.Equal(t, OutcomeTimeout, outcome.Kind)
	assert.Equal(t, 5, client.statusCalls)
}

func TestPoll_RPCErrorIsNotObserved(t *testing.T) {
	client := newFakeClient()
	client.statusErrs = []error{errors.New("unavailable"), errors.New("unavailable")}
	client.statuses = []*solana.SignatureStatus{nil, nil, status(solana.ConfirmationStatusFinalized)}

	outcome, err := New(client).Poll(context.Background(), solana.Signature{1}, WithInterval(time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, OutcomeFinalized, outcome.Kind)
	assert.Equal(t, 3, client.statusCalls)
}

func TestPoll_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(newFakeClient()).Poll(ctx, solana.Signature{1}, WithInterval(time.Hour))
	assert.Equal(t, context.Canceled, err)
}
