package lotto

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solotto/solotto-go/pkg/network"
	"github.com/solotto/solotto-go/pkg/solana"
	"github.com/solotto/solotto-go/pkg/solana/lottery"
	"github.com/solotto/solotto-go/pkg/solana/memo"
)

func TestInitialize_Encoded(t *testing.T) {
	env := setup(t)

	res, err := env.client.Initialize(context.Background(), env.authority, 1_000_000, 5, true)
	require.NoError(t, err)

	assert.False(t, res.Submitted)
	require.NotNil(t, res.Built)
	assert.Equal(t, network.FormEncoded, res.Built.Form)
	assert.NotEmpty(t, res.Built.Encoded)
	assert.Empty(t, env.rpc.sent)

	txn := res.Built.Transaction
	require.Len(t, txn.Message.Instructions, 3)
	ix := txn.Message.Instructions[2]
	assert.EqualValues(t, env.program, txn.Message.Accounts[ix.ProgramIndex])

	var args lottery.InitializeLotteryInstructionArgs
	require.NoError(t, args.Unmarshal(ix.Data))
	assert.EqualValues(t, 1_000_000, args.TicketPrice)
	assert.EqualValues(t, 5, args.LotteryId)

	// The tolerance comes from config.
	limit, err := computeLimit(txn)
	require.NoError(t, err)
	assert.EqualValues(t, 6000, limit)
}

func TestRandomDraw_Unsigned(t *testing.T) {
	env := setup(t)

	res, err := env.client.RandomDraw(context.Background(), NewAccount(env.authority.PublicKey), 5, false)
	require.NoError(t, err)

	assert.False(t, res.Submitted)
	assert.Equal(t, network.FormTransaction, res.Built.Form)

	txn := res.Built.Transaction
	require.Len(t, txn.Message.Instructions, 4)

	decompiled, err := memo.DecompileMemo(txn.Message, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte(DrawMemo), decompiled.Data)
	assert.EqualValues(t, env.authority.PublicKey, decompiled.Signers[0])
}

func TestRandomDraw_Submitted(t *testing.T) {
	env := setup(t)
	winner := uint64(3)
	env.putLottery(t, &lottery.LotteryAccount{
		Authority:          env.authority.PublicKey,
		LotteryId:          5,
		TotalTickets:       4,
		WinnerTicketNumber: &winner,
		WinnerAddress:      newKey(t),
		PrizePool:          100,
		DrawInitiated:      true,
	})

	res, err := env.client.RandomDraw(context.Background(), env.authority, 5, false)
	require.NoError(t, err)

	assert.True(t, res.Submitted)
	assert.True(t, res.Finalized())
	assert.Equal(t, env.rpc.sig, res.Signature)
	require.Len(t, env.rpc.sent, 1)

	var sent solana.Transaction
	require.NoError(t, sent.Unmarshal(env.rpc.sent[0]))
	require.NotEmpty(t, sent.Signatures)

	require.NotNil(t, res.Lottery)
	require.NotNil(t, res.Lottery.WinnerTicketNumber)
	assert.EqualValues(t, 3, *res.Lottery.WinnerTicketNumber)
	assert.EqualValues(t, "100", res.Lottery.PrizePoolBalance.String())
}

func TestLockLottery(t *testing.T) {
	env := setup(t)

	res, err := env.client.LockLottery(context.Background(), NewAccount(env.authority.PublicKey), 5, lottery.LockStateUnlocked, false)
	require.NoError(t, err)

	txn := res.Built.Transaction
	require.Len(t, txn.Message.Instructions, 3)

	var args lottery.LockLotteryInstructionArgs
	require.NoError(t, args.Unmarshal(txn.Message.Instructions[2].Data))
	assert.Equal(t, lottery.LockStateUnlocked, args.State)
}

func TestClaimExpired(t *testing.T) {
	env := setup(t)

	res, err := env.client.ClaimExpired(context.Background(), NewAccount(env.authority.PublicKey), 5, false)
	require.NoError(t, err)

	txn := res.Built.Transaction
	require.Len(t, txn.Message.Instructions, 3)
	ix := txn.Message.Instructions[2]
	assert.Equal(t, []byte{5}, ix.Data)
	require.Len(t, ix.Accounts, 4)

	prizePool, _, err := lottery.GetPrizePoolAddress(&lottery.GetPrizePoolAddressArgs{Program: env.program})
	require.NoError(t, err)
	assert.EqualValues(t, prizePool, txn.Message.Accounts[ix.Accounts[2]])
}
