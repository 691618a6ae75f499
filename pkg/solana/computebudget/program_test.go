package compute_budget

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solotto/solotto-go/pkg/solana"
)

func TestSetComputeUnitLimit(t *testing.T) {
	ixn := SetComputeUnitLimit(MaxComputeUnitLimit)
	assert.EqualValues(t, ProgramKey, ixn.Program)
	assert.Empty(t, ixn.Accounts)
	assert.Equal(t, []byte{2, 0xc0, 0x5c, 0x15, 0x00}, ixn.Data)
	assert.True(t, IsComputeBudgetInstruction(ixn))

	units, err := ParseSetComputeUnitLimitIxnData(ixn.Data)
	require.NoError(t, err)
	assert.EqualValues(t, MaxComputeUnitLimit, units)

	_, err = ParseSetComputeUnitLimitIxnData(SetComputeUnitPrice(1).Data)
	assert.Error(t, err)
}

func TestSetComputeUnitPrice(t *testing.T) {
	ixn := SetComputeUnitPrice(10_000)
	assert.Equal(t, []byte{3, 0x10, 0x27, 0, 0, 0, 0, 0, 0}, ixn.Data)

	price, err := ParseSetComputeUnitPriceIxnData(ixn.Data)
	require.NoError(t, err)
	assert.EqualValues(t, 10_000, price)

	_, err = ParseSetComputeUnitPriceIxnData([]byte{3, 1})
	assert.Error(t, err)
}

func TestIsComputeBudgetInstruction(t *testing.T) {
	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	assert.False(t, IsComputeBudgetInstruction(solana.NewInstruction(program, nil)))
}
