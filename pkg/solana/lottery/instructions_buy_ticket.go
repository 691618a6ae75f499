package lottery

import (
	"crypto/ed25519"

	"github.com/solotto/solotto-go/pkg/solana"
)

type BuyTicketInstructionAccounts struct {
	Buyer         ed25519.PublicKey
	Lottery       ed25519.PublicKey
	Ticket        ed25519.PublicKey
	PrizePool     ed25519.PublicKey
	TicketReceipt ed25519.PublicKey
}

// NewBuyTicketInstruction buys a single ticket. The receipt account must
// already exist and both the buyer and the receipt sign.
func NewBuyTicketInstruction(
	program ed25519.PublicKey,
	accounts *BuyTicketInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, 1)
	putInstructionType(data, InstructionTypeBuyTicket, &offset)

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Buyer,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Lottery,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Ticket,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.PrizePool,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.TicketReceipt,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}
