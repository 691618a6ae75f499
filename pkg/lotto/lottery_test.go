package lotto

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solotto/solotto-go/pkg/solana"
	"github.com/solotto/solotto-go/pkg/solana/lottery"
)

func (e *testEnv) lotteryAddress(t *testing.T, authority ed25519.PublicKey, lotteryId uint64) ed25519.PublicKey {
	address, _, err := lottery.GetLotteryAddress(&lottery.GetLotteryAddressArgs{
		Program:   e.program,
		Authority: authority,
		LotteryId: lotteryId,
	})
	require.NoError(t, err)
	return address
}

func (e *testEnv) putLottery(t *testing.T, account *lottery.LotteryAccount) ed25519.PublicKey {
	address := e.lotteryAddress(t, account.Authority, account.LotteryId)
	e.rpc.accounts[string(address)] = account.Marshal()
	return address
}

func (e *testEnv) putTicket(t *testing.T, lotteryAddress, owner ed25519.PublicKey, number uint64) *lottery.TicketAccount {
	ticket := &lottery.TicketAccount{
		Owner:         owner,
		Lottery:       lotteryAddress,
		TicketReceipt: newKey(t),
		TicketNumber:  number,
	}
	e.rpc.programAccounts = append(e.rpc.programAccounts, solana.ProgramAccount{
		PublicKey: newKey(t),
		Account:   solana.AccountInfo{Data: ticket.Marshal()},
	})
	return ticket
}

func TestGetLottery(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	address := env.putLottery(t, &lottery.LotteryAccount{
		Authority:    env.authority.PublicKey,
		LotteryId:    7,
		TicketPrice:  1_000_000,
		TotalTickets: 10,
		IsActive:     true,
		PrizePool:    10_000_000,
	})

	state, err := env.client.GetLottery(ctx, env.authority.PublicKey, 7, true)
	require.NoError(t, err)
	assert.EqualValues(t, address, state.LotteryAddress)
	assert.EqualValues(t, 10, state.TotalTickets)
	assert.True(t, state.IsActive)
	assert.True(t, decimal.NewFromInt(9_000_000).Equal(state.PrizePoolBalance))

	state, err = env.client.GetLottery(ctx, env.authority.PublicKey, 7, false)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10_000_000).Equal(state.PrizePoolBalance))

	_, err = env.client.GetLottery(ctx, env.authority.PublicKey, 8, true)
	assert.Equal(t, ErrLotteryNotFound, err)
}

func TestGetTicket(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	address := env.lotteryAddress(t, env.authority.PublicKey, 1)
	owner := newKey(t)
	env.putTicket(t, address, newKey(t), 1)
	expected := env.putTicket(t, address, owner, 2)
	env.putTicket(t, env.lotteryAddress(t, env.authority.PublicKey, 2), owner, 2)

	ticket, err := env.client.GetTicket(ctx, env.authority.PublicKey, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, *expected, ticket.TicketAccount)
	assert.EqualValues(t, 1, ticket.LotteryId)
	assert.EqualValues(t, env.authority.PublicKey, ticket.Authority)

	require.Len(t, env.rpc.filters, 1)
	filters := env.rpc.filters[0]
	require.Len(t, filters, 3)
	require.NotNil(t, filters[0].DataSize)
	assert.EqualValues(t, 104, *filters[0].DataSize)
	assert.EqualValues(t, 32, filters[1].Memcmp.Offset)
	assert.EqualValues(t, address, filters[1].Memcmp.Bytes)
	assert.EqualValues(t, 96, filters[2].Memcmp.Offset)
	assert.Equal(t, []byte{2, 0, 0, 0, 0, 0, 0, 0}, filters[2].Memcmp.Bytes)

	_, err = env.client.GetTicket(ctx, env.authority.PublicKey, 1, 3)
	assert.Equal(t, ErrTicketNotFound, err)
}

func TestGetTickets(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	address := env.lotteryAddress(t, env.authority.PublicKey, 1)
	buyer := newKey(t)
	env.putTicket(t, address, buyer, 1)
	env.putTicket(t, address, newKey(t), 2)
	env.putTicket(t, address, buyer, 3)
	env.putTicket(t, env.lotteryAddress(t, env.authority.PublicKey, 2), buyer, 4)

	all, err := env.client.GetTickets(ctx, env.authority.PublicKey, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, AllBuyers, all.Buyer)
	assert.EqualValues(t, address, all.LotteryAddress)
	assert.EqualValues(t, 1, all.LotteryId)
	require.Len(t, all.Tickets, 3)
	for i, expected := range []uint64{3, 2, 1} {
		assert.Equal(t, expected, all.Tickets[i].TicketNumber)
	}

	mine, err := env.client.GetTickets(ctx, env.authority.PublicKey, 1, buyer)
	require.NoError(t, err)
	assert.Equal(t, base58.Encode(buyer), mine.Buyer)
	require.Len(t, mine.Tickets, 2)
	assert.EqualValues(t, 3, mine.Tickets[0].TicketNumber)
	assert.EqualValues(t, 1, mine.Tickets[1].TicketNumber)

	require.Len(t, env.rpc.filters, 2)
	filters := env.rpc.filters[1]
	require.Len(t, filters, 3)
	assert.EqualValues(t, 0, filters[1].Memcmp.Offset)
	assert.EqualValues(t, buyer, filters[1].Memcmp.Bytes)
	assert.EqualValues(t, 32, filters[2].Memcmp.Offset)
}
