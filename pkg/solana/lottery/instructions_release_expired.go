package lottery

import (
	"crypto/ed25519"

	"github.com/solotto/solotto-go/pkg/solana"
)

type ReleaseExpiredInstructionAccounts struct {
	Authority ed25519.PublicKey
	Lottery   ed25519.PublicKey
	PrizePool ed25519.PublicKey
}

// NewReleaseExpiredInstruction returns an unclaimed prize to the authority
// once the lottery's release timestamp has passed.
func NewReleaseExpiredInstruction(
	program ed25519.PublicKey,
	accounts *ReleaseExpiredInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, 1)
	putInstructionType(data, InstructionTypeReleaseExpired, &offset)

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Authority,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Lottery,
				IsWritable: true,
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
