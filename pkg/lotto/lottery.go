package lotto

import (
	"context"
	"crypto/ed25519"
	"encoding/binary"
	"sort"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/solotto/solotto-go/pkg/metrics"
	"github.com/solotto/solotto-go/pkg/solana"
	"github.com/solotto/solotto-go/pkg/solana/lottery"
)

// AllBuyers is reported as the buyer of a ticket list that was not filtered
// by buyer.
const AllBuyers = "All"

// TicketList is the set of tickets sold by a lottery, newest first.
type TicketList struct {
	LotteryId      uint64
	LotteryAddress ed25519.PublicKey
	Authority      ed25519.PublicKey
	Buyer          string
	Tickets        []*lottery.TicketState
}

// GetLottery fetches and decodes the lottery identified by authority and
// lotteryId. With applyFeeAdjustment the prize pool is reported net of the
// protocol fee.
func (c *Client) GetLottery(ctx context.Context, authority ed25519.PublicKey, lotteryId uint64, applyFeeAdjustment bool) (*lottery.LotteryState, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "GetLottery")
	defer tracer.End()

	address, err := c.lotteryAddress(authority, lotteryId)
	if err != nil {
		return nil, err
	}

	info, err := c.rpc.GetAccountInfo(address, solana.CommitmentConfirmed)
	if err == solana.ErrNoAccountInfo {
		return nil, ErrLotteryNotFound
	} else if err != nil {
		tracer.OnError(err)
		return nil, errors.Wrap(err, "error getting lottery account")
	}

	state, err := lottery.DecodeLotteryState(c.program, info.Data, applyFeeAdjustment)
	if err != nil {
		tracer.OnError(err)
		return nil, errors.Wrapf(err, "error decoding lottery %s", base58.Encode(address))
	}
	return state, nil
}

// GetTicket finds a ticket of a lottery by its number.
func (c *Client) GetTicket(ctx context.Context, authority ed25519.PublicKey, lotteryId, ticketNumber uint64) (*lottery.TicketState, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "GetTicket")
	defer tracer.End()

	address, err := c.lotteryAddress(authority, lotteryId)
	if err != nil {
		return nil, err
	}

	var number [8]byte
	binary.LittleEndian.PutUint64(number[:], ticketNumber)

	accounts, err := c.rpc.GetProgramAccounts(
		c.program,
		solana.CommitmentConfirmed,
		solana.DataSizeFilter(lottery.TicketAccountSize),
		solana.MemcmpFilterAt(lottery.TicketLotteryOffset, address),
		solana.MemcmpFilterAt(lottery.TicketNumberOffset, number[:]),
	)
	if err != nil {
		tracer.OnError(err)
		return nil, errors.Wrap(err, "error getting ticket accounts")
	}
	if len(accounts) == 0 {
		return nil, ErrTicketNotFound
	}

	return lottery.NewTicketState(accounts[0].PublicKey, accounts[0].Account.Data, authority, lotteryId)
}

// GetTickets lists the tickets of a lottery, optionally only those owned by
// buyer, sorted by ticket number in descending order.
func (c *Client) GetTickets(ctx context.Context, authority ed25519.PublicKey, lotteryId uint64, buyer ed25519.PublicKey) (*TicketList, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "GetTickets")
	defer tracer.End()

	address, err := c.lotteryAddress(authority, lotteryId)
	if err != nil {
		return nil, err
	}

	filters := []solana.ProgramAccountFilter{
		solana.DataSizeFilter(lottery.TicketAccountSize),
	}
	if len(buyer) > 0 {
		filters = append(filters, solana.MemcmpFilterAt(lottery.TicketOwnerOffset, buyer))
	}
	filters = append(filters, solana.MemcmpFilterAt(lottery.TicketLotteryOffset, address))

	accounts, err := c.rpc.GetProgramAccounts(c.program, solana.CommitmentConfirmed, filters...)
	if err != nil {
		tracer.OnError(err)
		return nil, errors.Wrap(err, "error getting ticket accounts")
	}

	list := &TicketList{
		LotteryId:      lotteryId,
		LotteryAddress: address,
		Authority:      authority,
		Buyer:          AllBuyers,
		Tickets:        make([]*lottery.TicketState, 0, len(accounts)),
	}
	if len(buyer) > 0 {
		list.Buyer = base58.Encode(buyer)
	}

	for _, account := range accounts {
		ticket, err := lottery.NewTicketState(account.PublicKey, account.Account.Data, authority, lotteryId)
		if err != nil {
			c.log.WithError(err).WithField("ticket", base58.Encode(account.PublicKey)).Warn("skipping undecodable ticket")
			continue
		}
		list.Tickets = append(list.Tickets, ticket)
	}

	sort.Slice(list.Tickets, func(i, j int) bool {
		return list.Tickets[i].TicketNumber > list.Tickets[j].TicketNumber
	})

	tracer.AddAttribute("tickets", len(list.Tickets))
	return list, nil
}

func (c *Client) lotteryAddress(authority ed25519.PublicKey, lotteryId uint64) (ed25519.PublicKey, error) {
	address, _, err := lottery.GetLotteryAddress(&lottery.GetLotteryAddressArgs{
		Program:   c.program,
		Authority: authority,
		LotteryId: lotteryId,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error deriving lottery address")
	}
	return address, nil
}

func (c *Client) prizePoolAddress() (ed25519.PublicKey, error) {
	address, _, err := lottery.GetPrizePoolAddress(&lottery.GetPrizePoolAddressArgs{
		Program: c.program,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error deriving prize pool address")
	}
	return address, nil
}
