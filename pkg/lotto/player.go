package lotto

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"

	"github.com/pkg/errors"

	"github.com/solotto/solotto-go/pkg/metrics"
	"github.com/solotto/solotto-go/pkg/solana"
	"github.com/solotto/solotto-go/pkg/solana/lottery"
	"github.com/solotto/solotto-go/pkg/solana/system"
)

// BuyTickets purchases amount tickets for buyer in a single transaction.
func (c *Client) BuyTickets(ctx context.Context, buyer *Account, authority ed25519.PublicKey, lotteryId uint64, amount int, encoded bool) (*Result, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "BuyTickets")
	defer tracer.End()

	instructions, receipts, err := c.BundleTickets(ctx, buyer.PublicKey, authority, lotteryId, amount)
	if err != nil {
		tracer.OnError(err)
		return nil, err
	}

	res, err := c.execute(ctx, buyer, instructions, receipts, "", encoded, nil)
	tracer.OnError(err)
	return res, err
}

// BundleTickets returns the instructions that buy amount tickets, along with
// the receipt keys that must sign them. Each ticket gets a fresh receipt
// account, created empty and owned by the lottery program, which makes its
// ticket address unique.
func (c *Client) BundleTickets(ctx context.Context, buyer, authority ed25519.PublicKey, lotteryId uint64, amount int) ([]solana.Instruction, []ed25519.PrivateKey, error) {
	if amount < MinTicketsPerPurchase || amount > MaxTicketsPerPurchase {
		return nil, nil, ErrInvalidTicketAmount
	}

	address, err := c.lotteryAddress(authority, lotteryId)
	if err != nil {
		return nil, nil, err
	}
	prizePool, err := c.prizePoolAddress()
	if err != nil {
		return nil, nil, err
	}

	rent, err := c.rpc.GetMinimumBalanceForRentExemption(0)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error getting receipt rent")
	}

	instructions := make([]solana.Instruction, 0, 2*amount)
	receipts := make([]ed25519.PrivateKey, 0, amount)
	for i := 0; i < amount; i++ {
		receipt, receiptKey, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, nil, errors.Wrap(err, "error generating receipt")
		}

		ticket, _, err := lottery.GetTicketAddress(&lottery.GetTicketAddressArgs{
			Program: c.program,
			Lottery: address,
			Buyer:   buyer,
			Receipt: receipt,
		})
		if err != nil {
			return nil, nil, errors.Wrap(err, "error deriving ticket address")
		}

		instructions = append(instructions,
			system.CreateAccount(buyer, receipt, c.program, rent, 0),
			lottery.NewBuyTicketInstruction(
				c.program,
				&lottery.BuyTicketInstructionAccounts{
					Buyer:         buyer,
					Lottery:       address,
					Ticket:        ticket,
					PrizePool:     prizePool,
					TicketReceipt: receipt,
				},
			),
		)
		receipts = append(receipts, receiptKey)
	}

	return instructions, receipts, nil
}

// ClaimTicket claims the prize of a drawn lottery for the owner of the winning
// ticket. The ticket owner pays for and signs the transaction, so winner must
// be that owner when it is used to sign.
func (c *Client) ClaimTicket(ctx context.Context, authority ed25519.PublicKey, lotteryId uint64, winner *Account, encoded bool) (*Result, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "ClaimTicket")
	defer tracer.End()

	state, err := c.GetLottery(ctx, authority, lotteryId, true)
	if err != nil {
		return nil, err
	}
	if state.WinnerTicketNumber == nil {
		return nil, ErrNoWinner
	}

	ticket, err := c.GetTicket(ctx, authority, lotteryId, *state.WinnerTicketNumber)
	if err != nil {
		return nil, err
	}

	payer := NewAccount(ticket.Owner)
	if winner.CanSign() {
		if !bytes.Equal(winner.PublicKey, ticket.Owner) {
			return nil, ErrNotTicketOwner
		}
		payer = winner
	}

	ix := lottery.NewClaimPrizeInstruction(
		c.program,
		&lottery.ClaimPrizeInstructionAccounts{
			TicketOwner:   ticket.Owner,
			Lottery:       ticket.Lottery,
			TicketReceipt: ticket.TicketReceipt,
			Ticket:        ticket.TicketAddress,
			PrizePool:     state.PrizePoolAddress,
		},
	)

	res, err := c.execute(ctx, payer, []solana.Instruction{ix}, nil, "", encoded, nil)
	tracer.OnError(err)
	return res, err
}
