package lottery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solotto/solotto-go/pkg/solana"
	"github.com/solotto/solotto-go/pkg/solana/system"
)

func TestInitializeLotteryInstruction(t *testing.T) {
	program := newKey(t)
	accounts := &InitializeLotteryInstructionAccounts{
		Authority: newKey(t),
		Lottery:   newKey(t),
	}

	ix := NewInitializeLotteryInstruction(program, accounts, &InitializeLotteryInstructionArgs{
		TicketPrice: 100_000_000,
		LotteryId:   3,
	})

	assert.EqualValues(t, program, ix.Program)
	assert.Equal(t, []byte{
		0,
		0x00, 0xe1, 0xf5, 0x05, 0, 0, 0, 0,
		3, 0, 0, 0, 0, 0, 0, 0,
	}, ix.Data)

	require.Len(t, ix.Accounts, 3)
	assertMeta(t, ix.Accounts[0], accounts.Authority, true, true)
	assertMeta(t, ix.Accounts[1], accounts.Lottery, false, true)
	assertMeta(t, ix.Accounts[2], system.SystemAccount, false, false)

	var args InitializeLotteryInstructionArgs
	require.NoError(t, args.Unmarshal(ix.Data))
	assert.EqualValues(t, 100_000_000, args.TicketPrice)
	assert.EqualValues(t, 3, args.LotteryId)
}

func TestBuyTicketInstruction(t *testing.T) {
	accounts := &BuyTicketInstructionAccounts{
		Buyer:         newKey(t),
		Lottery:       newKey(t),
		Ticket:        newKey(t),
		PrizePool:     newKey(t),
		TicketReceipt: newKey(t),
	}

	ix := NewBuyTicketInstruction(newKey(t), accounts)
	assert.Equal(t, []byte{1}, ix.Data)

	require.Len(t, ix.Accounts, 6)
	assertMeta(t, ix.Accounts[0], accounts.Buyer, true, true)
	assertMeta(t, ix.Accounts[1], accounts.Lottery, false, true)
	assertMeta(t, ix.Accounts[2], accounts.Ticket, false, true)
	assertMeta(t, ix.Accounts[3], accounts.PrizePool, false, true)
	assertMeta(t, ix.Accounts[4], accounts.TicketReceipt, true, true)
	assertMeta(t, ix.Accounts[5], system.SystemAccount, false, false)
}

func TestDrawWinnerInstruction(t *testing.T) {
	accounts := &DrawWinnerInstructionAccounts{
		Authority: newKey(t),
		Lottery:   newKey(t),
		PrizePool: newKey(t),
	}

	ix := NewDrawWinnerInstruction(newKey(t), accounts)
	assert.Equal(t, []byte{2}, ix.Data)

	require.Len(t, ix.Accounts, 5)
	assertMeta(t, ix.Accounts[0], accounts.Authority, true, false)
	assertMeta(t, ix.Accounts[1], accounts.Lottery, false, true)
	assertMeta(t, ix.Accounts[2], system.SlotHashesSysVar, false, false)
	assertMeta(t, ix.Accounts[3], accounts.PrizePool, false, true)
	assertMeta(t, ix.Accounts[4], system.SystemAccount, false, false)
}

func TestClaimPrizeInstruction(t *testing.T) {
	accounts := &ClaimPrizeInstructionAccounts{
		TicketOwner:   newKey(t),
		Lottery:       newKey(t),
		TicketReceipt: newKey(t),
		Ticket:        newKey(t),
		PrizePool:     newKey(t),
	}

	ix := NewClaimPrizeInstruction(newKey(t), accounts)
	assert.Equal(t, []byte{3}, ix.Data)

	require.Len(t, ix.Accounts, 6)
	assertMeta(t, ix.Accounts[0], accounts.TicketOwner, true, true)
	assertMeta(t, ix.Accounts[1], accounts.Lottery, false, true)
	assertMeta(t, ix.Accounts[2], accounts.TicketReceipt, false, false)
	assertMeta(t, ix.Accounts[3], accounts.Ticket, false, false)
	assertMeta(t, ix.Accounts[4], accounts.PrizePool, false, true)
	assertMeta(t, ix.Accounts[5], system.SystemAccount, false, false)
}

func TestLockLotteryInstruction(t *testing.T) {
	accounts := &LockLotteryInstructionAccounts{
		Authority: newKey(t),
		Lottery:   newKey(t),
	}

	for _, state := range []LockState{LockStateLocked, LockStateUnlocked} {
		ix := NewLockLotteryInstruction(newKey(t), accounts, &LockLotteryInstructionArgs{State: state})
		assert.Equal(t, []byte{4, byte(state)}, ix.Data)

		require.Len(t, ix.Accounts, 2)
		assertMeta(t, ix.Accounts[0], accounts.Authority, true, false)
		assertMeta(t, ix.Accounts[1], accounts.Lottery, false, true)

		var args LockLotteryInstructionArgs
		require.NoError(t, args.Unmarshal(ix.Data))
		assert.Equal(t, state, args.State)
	}
}

func TestReleaseExpiredInstruction(t *testing.T) {
	accounts := &ReleaseExpiredInstructionAccounts{
		Authority: newKey(t),
		Lottery:   newKey(t),
		PrizePool: newKey(t),
	}

	ix := NewReleaseExpiredInstruction(newKey(t), accounts)
	assert.Equal(t, []byte{5}, ix.Data)

	require.Len(t, ix.Accounts, 4)
	assertMeta(t, ix.Accounts[0], accounts.Authority, true, true)
	assertMeta(t, ix.Accounts[1], accounts.Lottery, false, true)
	assertMeta(t, ix.Accounts[2], accounts.PrizePool, false, true)
	assertMeta(t, ix.Accounts[3], system.SystemAccount, false, false)
}

func TestGetInstructionType(t *testing.T) {
	for i := InstructionTypeInitializeLottery; i <= InstructionTypeReleaseExpired; i++ {
		actual, err := GetInstructionType([]byte{byte(i)})
		require.NoError(t, err)
		assert.Equal(t, i, actual)
		assert.NotEqual(t, "unknown", actual.String())
	}

	_, err := GetInstructionType(nil)
	assert.Equal(t, ErrInvalidInstructionData, err)

	_, err = GetInstructionType([]byte{6})
	assert.Equal(t, ErrInvalidInstructionData, err)

	var args InitializeLotteryInstructionArgs
	assert.Equal(t, ErrInvalidInstructionData, args.Unmarshal([]byte{1, 0, 0}))
}

func assertMeta(t *testing.T, meta solana.AccountMeta, key []byte, signer, writable bool) {
	assert.EqualValues(t, key, meta.PublicKey)
	assert.Equal(t, signer, meta.IsSigner)
	assert.Equal(t, writable, meta.IsWritable)
}
