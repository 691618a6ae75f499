package lottery

type InstructionType uint8

const (
	InstructionTypeInitializeLottery InstructionType = iota
	InstructionTypeBuyTicket
	InstructionTypeDrawWinner
	InstructionTypeClaimPrize
	InstructionTypeLockLottery
	InstructionTypeReleaseExpired
)

func (t InstructionType) String() string {
	switch t {
	case InstructionTypeInitializeLottery:
		return "initialize_lottery"
	case InstructionTypeBuyTicket:
		return "buy_ticket"
	case InstructionTypeDrawWinner:
		return "draw_winner"
	case InstructionTypeClaimPrize:
		return "claim_prize"
	case InstructionTypeLockLottery:
		return "lock_lottery"
	case InstructionTypeReleaseExpired:
		return "release_expired"
	}
	return "unknown"
}

func putInstructionType(dst []byte, v InstructionType, offset *int) {
	dst[*offset] = uint8(v)
	*offset += 1
}

// GetInstructionType returns the discriminator of encoded instruction data.
func GetInstructionType(data []byte) (InstructionType, error) {
	if len(data) == 0 {
		return 0, ErrInvalidInstructionData
	}

	t := InstructionType(data[0])
	if t > InstructionTypeReleaseExpired {
		return 0, ErrInvalidInstructionData
	}
	return t, nil
}
