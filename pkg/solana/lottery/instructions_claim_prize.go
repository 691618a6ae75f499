package lottery

import (
	"crypto/ed25519"

	"github.com/solotto/solotto-go/pkg/solana"
)

type ClaimPrizeInstructionAccounts struct {
	TicketOwner   ed25519.PublicKey
	Lottery       ed25519.PublicKey
	TicketReceipt ed25519.PublicKey
	Ticket        ed25519.PublicKey
	PrizePool     ed25519.PublicKey
}

func NewClaimPrizeInstruction(
	program ed25519.PublicKey,
	accounts *ClaimPrizeInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, 1)
	putInstructionType(data, InstructionTypeClaimPrize, &offset)

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.TicketOwner,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Lottery,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.TicketReceipt,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Ticket,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.PrizePool,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}
