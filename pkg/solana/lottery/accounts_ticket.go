package lottery

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/solotto/solotto-go/pkg/solana/binary"
)

const (
	TicketOwnerOffset   = 0
	TicketLotteryOffset = 32
	TicketReceiptOffset = 64
	TicketNumberOffset  = 96

	TicketAccountSize = (32 + // owner
		32 + // lottery
		32 + // ticket_receipt
		8) // ticket_number
)

type TicketAccount struct {
	Owner         ed25519.PublicKey
	Lottery       ed25519.PublicKey
	TicketReceipt ed25519.PublicKey
	TicketNumber  uint64
}

func (obj *TicketAccount) Unmarshal(data []byte) error {
	if len(data) < TicketAccountSize {
		return ErrInvalidAccountData
	}

	var offset int
	binary.GetKey32(data[offset:], &obj.Owner, &offset)
	binary.GetKey32(data[offset:], &obj.Lottery, &offset)
	binary.GetKey32(data[offset:], &obj.TicketReceipt, &offset)
	binary.GetUint64(data[offset:], &obj.TicketNumber, &offset)

	return nil
}

func (obj *TicketAccount) Marshal() []byte {
	data := make([]byte, TicketAccountSize)

	var offset int
	binary.PutKey32(data[offset:], obj.Owner, &offset)
	binary.PutKey32(data[offset:], obj.Lottery, &offset)
	binary.PutKey32(data[offset:], obj.TicketReceipt, &offset)
	binary.PutUint64(data[offset:], obj.TicketNumber, &offset)

	return data
}

func (obj *TicketAccount) String() string {
	return fmt.Sprintf(
		"Ticket{owner=%s,lottery=%s,ticket_receipt=%s,ticket_number=%d}",
		base58.Encode(obj.Owner),
		base58.Encode(obj.Lottery),
		base58.Encode(obj.TicketReceipt),
		obj.TicketNumber,
	)
}

// TicketState is a decoded ticket along with where it was found.
type TicketState struct {
	TicketAccount

	TicketAddress ed25519.PublicKey
	LotteryId     uint64
	Authority     ed25519.PublicKey
}

// NewTicketState decodes ticket account data fetched at address for the
// lottery identified by authority and lotteryId.
func NewTicketState(address ed25519.PublicKey, data []byte, authority ed25519.PublicKey, lotteryId uint64) (*TicketState, error) {
	var account TicketAccount
	if err := account.Unmarshal(data); err != nil {
		return nil, err
	}

	return &TicketState{
		TicketAccount: account,
		TicketAddress: address,
		LotteryId:     lotteryId,
		Authority:     authority,
	}, nil
}
