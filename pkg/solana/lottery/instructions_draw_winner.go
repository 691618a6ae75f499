package lottery

import (
	"crypto/ed25519"

	"github.com/solotto/solotto-go/pkg/solana"
	"github.com/solotto/solotto-go/pkg/solana/system"
)

type DrawWinnerInstructionAccounts struct {
	Authority ed25519.PublicKey
	Lottery   ed25519.PublicKey
	PrizePool ed25519.PublicKey
}

// NewDrawWinnerInstruction picks the winning ticket. The program seeds its
// selection from the SlotHashes sysvar.
func NewDrawWinnerInstruction(
	program ed25519.PublicKey,
	accounts *DrawWinnerInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, 1)
	putInstructionType(data, InstructionTypeDrawWinner, &offset)

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Authority,
				IsWritable: false,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Lottery,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  system.SlotHashesSysVar,
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
