package lottery

import (
	"crypto/ed25519"
	"fmt"
	"math/big"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/solotto/solotto-go/pkg/solana/binary"
)

const (
	MinLotteryAccountSize = (32 + // authority
		8 + // lottery_id
		8 + // ticket_price
		8) // total_tickets

	MaxLotteryAccountSize = (MinLotteryAccountSize +
		1 + 8 + // winner_ticket_number
		1 + 32 + // winner_address
		1 + // is_active
		8 + // prize_pool
		1 + // draw_initiated
		1 + 8) // release_timestamp
)

// protocolFeeRate is the share of the prize pool the program keeps when a
// winner claims.
var protocolFeeRate = decimal.New(1, -1)

type LotteryAccount struct {
	Authority          ed25519.PublicKey
	LotteryId          uint64
	TicketPrice        uint64
	TotalTickets       uint64
	WinnerTicketNumber *uint64
	WinnerAddress      ed25519.PublicKey
	IsActive           bool
	PrizePool          uint64
	DrawInitiated      bool
	ReleaseTimestamp   *uint64
}

// Unmarshal decodes a lottery account. The fixed prefix must be present. A
// winner address or release timestamp that runs past the end of the buffer is
// treated as absent, and any fields after a truncated winner address keep
// their zero values.
func (obj *LotteryAccount) Unmarshal(data []byte) error {
	*obj = LotteryAccount{}

	var offset int
	var err error

	if obj.Authority, offset, err = binary.ReadKey32(data, offset); err != nil {
		return errors.Wrap(ErrInvalidAccountData, "authority")
	}
	if obj.LotteryId, offset, err = binary.ReadUint64(data, offset); err != nil {
		return errors.Wrap(ErrInvalidAccountData, "lottery_id")
	}
	if obj.TicketPrice, offset, err = binary.ReadUint64(data, offset); err != nil {
		return errors.Wrap(ErrInvalidAccountData, "ticket_price")
	}
	if obj.TotalTickets, offset, err = binary.ReadUint64(data, offset); err != nil {
		return errors.Wrap(ErrInvalidAccountData, "total_tickets")
	}
	if obj.WinnerTicketNumber, offset, err = binary.ReadOptional(data, offset, binary.ReadUint64); err != nil {
		return errors.Wrap(ErrInvalidAccountData, "winner_ticket_number")
	}

	winner, next, err := binary.ReadOptional(data, offset, binary.ReadKey32)
	if err != nil {
		return nil
	}
	if winner != nil {
		obj.WinnerAddress = *winner
	}
	offset = next

	if obj.IsActive, offset, err = binary.ReadBool(data, offset); err != nil {
		return errors.Wrap(ErrInvalidAccountData, "is_active")
	}
	if obj.PrizePool, offset, err = binary.ReadUint64(data, offset); err != nil {
		return errors.Wrap(ErrInvalidAccountData, "prize_pool")
	}
	if obj.DrawInitiated, offset, err = binary.ReadBool(data, offset); err != nil {
		return errors.Wrap(ErrInvalidAccountData, "draw_initiated")
	}

	release, _, err := binary.ReadOptional(data, offset, binary.ReadUint64)
	if err == nil {
		obj.ReleaseTimestamp = release
	}

	return nil
}

// Marshal encodes the account in the program's layout. Absent optional
// fields take up only their presence flag.
func (obj *LotteryAccount) Marshal() []byte {
	data := make([]byte, MaxLotteryAccountSize)

	var offset int
	binary.PutKey32(data[offset:], obj.Authority, &offset)
	binary.PutUint64(data[offset:], obj.LotteryId, &offset)
	binary.PutUint64(data[offset:], obj.TicketPrice, &offset)
	binary.PutUint64(data[offset:], obj.TotalTickets, &offset)
	binary.PutCompactOptionalUint64(data[offset:], obj.WinnerTicketNumber, &offset)
	binary.PutCompactOptionalKey32(data[offset:], obj.WinnerAddress, &offset)
	binary.PutBool(data[offset:], obj.IsActive, &offset)
	binary.PutUint64(data[offset:], obj.PrizePool, &offset)
	binary.PutBool(data[offset:], obj.DrawInitiated, &offset)
	binary.PutCompactOptionalUint64(data[offset:], obj.ReleaseTimestamp, &offset)

	return data[:offset]
}

// PrizePoolBalance is the prize pool in lamports. With applyFeeAdjustment the
// protocol fee is deducted, which is how the pool is presented before a draw.
func (obj *LotteryAccount) PrizePoolBalance(applyFeeAdjustment bool) decimal.Decimal {
	balance := decimal.NewFromBigInt(new(big.Int).SetUint64(obj.PrizePool), 0)
	if !applyFeeAdjustment {
		return balance
	}
	return balance.Sub(balance.Mul(protocolFeeRate))
}

func (obj *LotteryAccount) String() string {
	winnerTicket := "none"
	if obj.WinnerTicketNumber != nil {
		winnerTicket = fmt.Sprintf("%d", *obj.WinnerTicketNumber)
	}

	winner := "none"
	if obj.WinnerAddress != nil {
		winner = base58.Encode(obj.WinnerAddress)
	}

	release := "none"
	if obj.ReleaseTimestamp != nil {
		release = fmt.Sprintf("%d", *obj.ReleaseTimestamp)
	}

	return fmt.Sprintf(
		"Lottery{authority=%s,lottery_id=%d,ticket_price=%d,total_tickets=%d,winner_ticket_number=%s,winner_address=%s,is_active=%v,prize_pool=%d,draw_initiated=%v,release_timestamp=%s}",
		base58.Encode(obj.Authority),
		obj.LotteryId,
		obj.TicketPrice,
		obj.TotalTickets,
		winnerTicket,
		winner,
		obj.IsActive,
		obj.PrizePool,
		obj.DrawInitiated,
		release,
	)
}

// LotteryState is a decoded lottery together with the addresses derived for
// it. The buffer carries neither address, so both are recomputed.
type LotteryState struct {
	LotteryAccount

	LotteryAddress   ed25519.PublicKey
	PrizePoolAddress ed25519.PublicKey
	PrizePoolBalance decimal.Decimal
}

// DecodeLotteryState decodes lottery account data owned by program.
func DecodeLotteryState(program ed25519.PublicKey, data []byte, applyFeeAdjustment bool) (*LotteryState, error) {
	var account LotteryAccount
	if err := account.Unmarshal(data); err != nil {
		return nil, err
	}

	lotteryAddress, _, err := GetLotteryAddress(&GetLotteryAddressArgs{
		Program:   program,
		Authority: account.Authority,
		LotteryId: account.LotteryId,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error deriving lottery address")
	}

	prizePoolAddress, _, err := GetPrizePoolAddress(&GetPrizePoolAddressArgs{
		Program: program,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error deriving prize pool address")
	}

	return &LotteryState{
		LotteryAccount:   account,
		LotteryAddress:   lotteryAddress,
		PrizePoolAddress: prizePoolAddress,
		PrizePoolBalance: account.PrizePoolBalance(applyFeeAdjustment),
	}, nil
}
