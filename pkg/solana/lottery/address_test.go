package lottery

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solotto/solotto-go/pkg/solana"
)

func newKey(t *testing.T) ed25519.PublicKey {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return pub
}

func TestGetLotteryAddress(t *testing.T) {
	program := newKey(t)
	authority := newKey(t)

	address, bump, err := GetLotteryAddress(&GetLotteryAddressArgs{
		Program:   program,
		Authority: authority,
		LotteryId: 42,
	})
	require.NoError(t, err)

	expected, err := solana.CreateProgramAddress(
		program,
		[]byte("lottery"),
		authority,
		[]byte{42, 0, 0, 0, 0, 0, 0, 0},
		[]byte{bump},
	)
	require.NoError(t, err)
	assert.EqualValues(t, expected, address)

	again, againBump, err := GetLotteryAddress(&GetLotteryAddressArgs{
		Program:   program,
		Authority: authority,
		LotteryId: 42,
	})
	require.NoError(t, err)
	assert.EqualValues(t, address, again)
	assert.Equal(t, bump, againBump)

	other, _, err := GetLotteryAddress(&GetLotteryAddressArgs{
		Program:   program,
		Authority: authority,
		LotteryId: 43,
	})
	require.NoError(t, err)
	assert.NotEqual(t, address, other)
}

func TestGetTicketAddress(t *testing.T) {
	program := newKey(t)
	lottery := newKey(t)
	buyer := newKey(t)

	first, _, err := GetTicketAddress(&GetTicketAddressArgs{
		Program: program,
		Lottery: lottery,
		Buyer:   buyer,
		Receipt: newKey(t),
	})
	require.NoError(t, err)

	second, _, err := GetTicketAddress(&GetTicketAddressArgs{
		Program: program,
		Lottery: lottery,
		Buyer:   buyer,
		Receipt: newKey(t),
	})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestGetPrizePoolAddress(t *testing.T) {
	program := newKey(t)

	address, bump, err := GetPrizePoolAddress(&GetPrizePoolAddressArgs{Program: program})
	require.NoError(t, err)

	expected, err := solana.CreateProgramAddress(program, []byte("prize-pool"), []byte{bump})
	require.NoError(t, err)
	assert.EqualValues(t, expected, address)
}

func TestAddress_InvalidKeys(t *testing.T) {
	program := newKey(t)

	_, _, err := GetLotteryAddress(&GetLotteryAddressArgs{
		Program:   program,
		Authority: []byte{1, 2, 3},
	})
	assert.Equal(t, ErrInvalidAddress, err)

	_, _, err = GetTicketAddress(&GetTicketAddressArgs{
		Program: program,
		Lottery: newKey(t),
		Buyer:   newKey(t),
	})
	assert.Equal(t, ErrInvalidAddress, err)

	_, _, err = GetPrizePoolAddress(&GetPrizePoolAddressArgs{})
	assert.Equal(t, ErrInvalidAddress, err)
}
