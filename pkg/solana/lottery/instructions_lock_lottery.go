package lottery

import (
	"crypto/ed25519"

	"github.com/solotto/solotto-go/pkg/solana"
)

type LockState uint8

const (
	LockStateLocked LockState = iota
	LockStateUnlocked
)

func (s LockState) String() string {
	switch s {
	case LockStateLocked:
		return "locked"
	case LockStateUnlocked:
		return "unlocked"
	}
	return "unknown"
}

const (
	LockLotteryInstructionArgsSize = 1 // lock_state
)

type LockLotteryInstructionArgs struct {
	State LockState
}

type LockLotteryInstructionAccounts struct {
	Authority ed25519.PublicKey
	Lottery   ed25519.PublicKey
}

// NewLockLotteryInstruction stops or resumes ticket sales.
func NewLockLotteryInstruction(
	program ed25519.PublicKey,
	accounts *LockLotteryInstructionAccounts,
	args *LockLotteryInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, 1+LockLotteryInstructionArgsSize)

	putInstructionType(data, InstructionTypeLockLottery, &offset)
	putUint8(data, uint8(args.State), &offset)

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
		},
	}
}

func (obj *LockLotteryInstructionArgs) Unmarshal(data []byte) error {
	if len(data) < 1+LockLotteryInstructionArgsSize {
		return ErrInvalidInstructionData
	}
	if t, err := GetInstructionType(data); err != nil || t != InstructionTypeLockLottery {
		return ErrInvalidInstructionData
	}

	obj.State = LockState(data[1])
	return nil
}
