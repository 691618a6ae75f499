package network

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solotto/solotto-go/pkg/solana"
)

func newKey(t *testing.T) ed25519.PublicKey {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return pub
}

func newTestInstruction(t *testing.T) solana.Instruction {
	return solana.NewInstruction(
		newKey(t),
		[]byte{1, 2, 3},
		solana.NewAccountMeta(newKey(t), false),
		solana.NewReadonlyAccountMeta(newKey(t), false),
	)
}

func programOf(txn solana.Transaction, index int) ed25519.PublicKey {
	return txn.Message.Accounts[txn.Message.Instructions[index].ProgramIndex]
}
