package lottery

import (
	"crypto/ed25519"

	"github.com/solotto/solotto-go/pkg/solana"
)

var (
	LotteryPrefix   = []byte("lottery")
	TicketPrefix    = []byte("ticket")
	PrizePoolPrefix = []byte("prize-pool")
)

type GetLotteryAddressArgs struct {
	Program   ed25519.PublicKey
	Authority ed25519.PublicKey
	LotteryId uint64
}

// GetLotteryAddress derives the lottery account for an authority and id.
func GetLotteryAddress(args *GetLotteryAddressArgs) (ed25519.PublicKey, uint8, error) {
	if !isValidKey(args.Program) || !isValidKey(args.Authority) {
		return nil, 0, ErrInvalidAddress
	}

	return solana.FindProgramAddressAndBump(
		args.Program,
		LotteryPrefix,
		args.Authority,
		toUint64Bytes(args.LotteryId),
	)
}

type GetTicketAddressArgs struct {
	Program ed25519.PublicKey
	Lottery ed25519.PublicKey
	Buyer   ed25519.PublicKey
	Receipt ed25519.PublicKey
}

// GetTicketAddress derives a ticket account. The receipt is the throwaway
// account created alongside the purchase, which keeps repeat purchases by
// the same buyer distinct.
func GetTicketAddress(args *GetTicketAddressArgs) (ed25519.PublicKey, uint8, error) {
	if !isValidKey(args.Program) || !isValidKey(args.Lottery) || !isValidKey(args.Buyer) || !isValidKey(args.Receipt) {
		return nil, 0, ErrInvalidAddress
	}

	return solana.FindProgramAddressAndBump(
		args.Program,
		TicketPrefix,
		args.Lottery,
		args.Buyer,
		args.Receipt,
	)
}

type GetPrizePoolAddressArgs struct {
	Program ed25519.PublicKey
}

// GetPrizePoolAddress derives the program wide prize pool. It is shared by
// every lottery under the program.
func GetPrizePoolAddress(args *GetPrizePoolAddressArgs) (ed25519.PublicKey, uint8, error) {
	if !isValidKey(args.Program) {
		return nil, 0, ErrInvalidAddress
	}

	return solana.FindProgramAddressAndBump(
		args.Program,
		PrizePoolPrefix,
	)
}
