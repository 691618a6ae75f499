package solana

import (
	"crypto/ed25519"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstruction_Clone(t *testing.T) {
	program := testKey(t)
	account := testKey(t)

	original := NewInstruction(program, []byte{1, 2, 3}, NewAccountMeta(account, true))
	firstProgramByte := program[0]
	clone := original.Clone()
	assert.Equal(t, original, clone)

	clone.Data[0] = 9
	clone.Accounts[0].IsWritable = false
	clone.Program[0] ^= 0xff

	assert.EqualValues(t, 1, original.Data[0])
	assert.True(t, original.Accounts[0].IsWritable)
	assert.Equal(t, firstProgramByte, original.Program[0])
}

func TestCompareAccountMeta(t *testing.T) {
	payer := AccountMeta{PublicKey: testKey(t), IsSigner: true, IsWritable: true, isPayer: true}
	program := AccountMeta{PublicKey: testKey(t), isProgram: true}
	writableSigner := NewAccountMeta(testKey(t), true)
	readonlySigner := NewReadonlyAccountMeta(testKey(t), true)
	writable := NewAccountMeta(testKey(t), false)
	readonly := NewReadonlyAccountMeta(testKey(t), false)

	accounts := []AccountMeta{program, readonly, writable, readonlySigner, writableSigner, payer}
	slices.SortFunc(accounts, compareAccountMeta)

	assert.Equal(t, []AccountMeta{payer, writableSigner, readonlySigner, writable, readonly, program}, accounts)
}

func testKey(t *testing.T) ed25519.PublicKey {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return pub
}
