package network

import (
	"context"
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solotto/solotto-go/pkg/solana"
)

func newSignedTransaction(t *testing.T) solana.Transaction {
	payer, key, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	txn := solana.NewV0Transaction(payer, nil, []solana.Instruction{newTestInstruction(t)})
	require.NoError(t, txn.Sign(key))
	return txn
}

func TestSend(t *testing.T) {
	client := newFakeClient()
	client.sendSig = solana.Signature{9, 9, 9}

	txn := newSignedTransaction(t)
	sig, err := New(client).Send(context.Background(), txn)
	require.NoError(t, err)
	assert.Equal(t, client.sendSig, sig)

	require.Len(t, client.sent, 1)
	assert.Equal(t, txn.Marshal(), client.sent[0])

	require.Len(t, client.sendConfig, 1)
	assert.True(t, client.sendConfig[0].SkipPreflight)
	require.NotNil(t, client.sendConfig[0].MaxRetries)
	assert.EqualValues(t, 0, *client.sendConfig[0].MaxRetries)
}

func TestSend_Unsigned(t *testing.T) {
	client := newFakeClient()

	txn := solana.NewV0Transaction(newKey(t), nil, []solana.Instruction{newTestInstruction(t)})
	_, err := New(client).Send(context.Background(), txn)

	var submissionErr *SubmissionError
	require.True(t, errors.As(err, &submissionErr))
	assert.Empty(t, client.sent)
}

func TestSend_Failure(t *testing.T) {
	client := newFakeClient()
	txErr := solana.NewTransactionError(solana.TransactionErrorBlockhashNotFound)
	client.sendErr = txErr

	_, err := New(client).Send(context.Background(), newSignedTransaction(t))

	var submissionErr *SubmissionError
	require.True(t, errors.As(err, &submissionErr))
	assert.Equal(t, txErr, submissionErr.TransactionError())

	client.sendErr = errors.New("connection reset")
	_, err = New(client).Send(context.Background(), newSignedTransaction(t))
	require.True(t, errors.As(err, &submissionErr))
	assert.Nil(t, submissionErr.TransactionError())
}

func TestSendAndConfirm(t *testing.T) {
	client := newFakeClient()
	client.sendSig = solana.Signature{7}
	client.statuses = []*solana.SignatureStatus{status(solana.ConfirmationStatusFinalized)}

	sig, outcome, err := New(client).SendAndConfirm(context.Background(), newSignedTransaction(t), WithInterval(time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, client.sendSig, sig)
	assert.Equal(t, OutcomeFinalized, outcome.Kind)
}
