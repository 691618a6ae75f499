package lotto

import (
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"

	"github.com/solotto/solotto-go/pkg/metrics"
	"github.com/solotto/solotto-go/pkg/solana"
	"github.com/solotto/solotto-go/pkg/solana/lottery"
)

// DrawMemo is attached to every draw transaction.
const DrawMemo = "draw"

// Initialize creates a lottery owned by authority.
func (c *Client) Initialize(ctx context.Context, authority *Account, ticketPrice, lotteryId uint64, encoded bool) (*Result, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Initialize")
	defer tracer.End()

	address, err := c.lotteryAddress(authority.PublicKey, lotteryId)
	if err != nil {
		return nil, err
	}

	c.log.WithField("lottery", base58.Encode(address)).Debug("initializing lottery")

	ix := lottery.NewInitializeLotteryInstruction(
		c.program,
		&lottery.InitializeLotteryInstructionAccounts{
			Authority: authority.PublicKey,
			Lottery:   address,
		},
		&lottery.InitializeLotteryInstructionArgs{
			TicketPrice: ticketPrice,
			LotteryId:   lotteryId,
		},
	)

	res, err := c.execute(ctx, authority, []solana.Instruction{ix}, nil, "", encoded, nil)
	tracer.OnError(err)
	return res, err
}

// RandomDraw asks the program to pick the winning ticket. Once finalized, the
// result carries the lottery with its winner.
func (c *Client) RandomDraw(ctx context.Context, authority *Account, lotteryId uint64, encoded bool) (*Result, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "RandomDraw")
	defer tracer.End()

	address, err := c.lotteryAddress(authority.PublicKey, lotteryId)
	if err != nil {
		return nil, err
	}
	prizePool, err := c.prizePoolAddress()
	if err != nil {
		return nil, err
	}

	ix := lottery.NewDrawWinnerInstruction(
		c.program,
		&lottery.DrawWinnerInstructionAccounts{
			Authority: authority.PublicKey,
			Lottery:   address,
			PrizePool: prizePool,
		},
	)

	res, err := c.execute(ctx, authority, []solana.Instruction{ix}, nil, DrawMemo, encoded, c.refreshLottery(authority.PublicKey, lotteryId))
	tracer.OnError(err)
	return res, err
}

// LockLottery stops or resumes ticket sales.
func (c *Client) LockLottery(ctx context.Context, authority *Account, lotteryId uint64, state lottery.LockState, encoded bool) (*Result, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "LockLottery")
	defer tracer.End()

	address, err := c.lotteryAddress(authority.PublicKey, lotteryId)
	if err != nil {
		return nil, err
	}

	ix := lottery.NewLockLotteryInstruction(
		c.program,
		&lottery.LockLotteryInstructionAccounts{
			Authority: authority.PublicKey,
			Lottery:   address,
		},
		&lottery.LockLotteryInstructionArgs{
			State: state,
		},
	)

	res, err := c.execute(ctx, authority, []solana.Instruction{ix}, nil, "", encoded, c.refreshLottery(authority.PublicKey, lotteryId))
	tracer.OnError(err)
	return res, err
}

// ClaimExpired returns a prize that was not claimed before the lottery's
// release timestamp to the authority.
func (c *Client) ClaimExpired(ctx context.Context, authority *Account, lotteryId uint64, encoded bool) (*Result, error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "ClaimExpired")
	defer tracer.End()

	address, err := c.lotteryAddress(authority.PublicKey, lotteryId)
	if err != nil {
		return nil, err
	}
	prizePool, err := c.prizePoolAddress()
	if err != nil {
		return nil, err
	}

	ix := lottery.NewReleaseExpiredInstruction(
		c.program,
		&lottery.ReleaseExpiredInstructionAccounts{
			Authority: authority.PublicKey,
			Lottery:   address,
			PrizePool: prizePool,
		},
	)

	res, err := c.execute(ctx, authority, []solana.Instruction{ix}, nil, "", encoded, c.refreshLottery(authority.PublicKey, lotteryId))
	tracer.OnError(err)
	return res, err
}

func (c *Client) refreshLottery(authority ed25519.PublicKey, lotteryId uint64) refreshFunc {
	return func(ctx context.Context) (*lottery.LotteryState, error) {
		return c.GetLottery(ctx, authority, lotteryId, false)
	}
}
