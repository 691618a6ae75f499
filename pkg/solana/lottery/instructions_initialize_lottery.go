package lottery

import (
	"crypto/ed25519"

	"github.com/solotto/solotto-go/pkg/solana"
)

const (
	InitializeLotteryInstructionArgsSize = (8 + // ticket_price
		8) // lottery_id
)

type InitializeLotteryInstructionArgs struct {
	TicketPrice uint64
	LotteryId   uint64
}

type InitializeLotteryInstructionAccounts struct {
	Authority ed25519.PublicKey
	Lottery   ed25519.PublicKey
}

func NewInitializeLotteryInstruction(
	program ed25519.PublicKey,
	accounts *InitializeLotteryInstructionAccounts,
	args *InitializeLotteryInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, 1+InitializeLotteryInstructionArgsSize)

	putInstructionType(data, InstructionTypeInitializeLottery, &offset)
	putUint64(data, args.TicketPrice, &offset)
	putUint64(data, args.LotteryId, &offset)

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
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}

// Unmarshal decodes the arguments of an encoded initialize instruction.
func (obj *InitializeLotteryInstructionArgs) Unmarshal(data []byte) error {
	if len(data) < 1+InitializeLotteryInstructionArgsSize {
		return ErrInvalidInstructionData
	}
	if t, err := GetInstructionType(data); err != nil || t != InstructionTypeInitializeLottery {
		return ErrInvalidInstructionData
	}

	offset := 1
	obj.TicketPrice = getUint64(data, &offset)
	obj.LotteryId = getUint64(data, &offset)
	return nil
}
