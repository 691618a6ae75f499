package solana

import (
	"bytes"
	"crypto/ed25519"
	"errors"
)

var (
	ErrIncorrectProgram     = errors.New("incorrect program")
	ErrIncorrectInstruction = errors.New("incorrect instruction")
)

// AccountMeta is an account referenced by an instruction, along with how the
// instruction uses it.
type AccountMeta struct {
	PublicKey  ed25519.PublicKey
	IsSigner   bool
	IsWritable bool
	isPayer    bool
	isProgram  bool
}

// NewAccountMeta creates a writable AccountMeta.
func NewAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: true,
	}
}

// NewReadonlyAccountMeta creates a read-only AccountMeta.
func NewReadonlyAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey: pub,
		IsSigner:  isSigner,
	}
}

// compareAccountMeta orders accounts the way a message lists them: payer
// first, then signers before non-signers, writable before read-only, and
// programs last. Ties are broken by public key so compilation is
// deterministic.
//
// Reference: https://docs.solana.com/transaction#account-addresses-format
func compareAccountMeta(a, b AccountMeta) int {
	switch {
	case a.isPayer != b.isPayer:
		return boolOrder(a.isPayer)
	case a.isProgram != b.isProgram:
		return boolOrder(!a.isProgram)
	case a.IsSigner != b.IsSigner:
		return boolOrder(a.IsSigner)
	case a.IsWritable != b.IsWritable:
		return boolOrder(a.IsWritable)
	}
	return bytes.Compare(a.PublicKey, b.PublicKey)
}

// boolOrder sorts the side holding first before the other side.
func boolOrder(first bool) int {
	if first {
		return -1
	}
	return 1
}

// Instruction represents a transaction instruction.
type Instruction struct {
	Program  ed25519.PublicKey
	Accounts []AccountMeta
	Data     []byte
}

// NewInstruction creates a new instruction.
func NewInstruction(program ed25519.PublicKey, data []byte, accounts ...AccountMeta) Instruction {
	return Instruction{
		Program:  program,
		Data:     data,
		Accounts: accounts,
	}
}

// Clone returns a copy of the instruction that shares no slices with i.
func (i Instruction) Clone() Instruction {
	accounts := make([]AccountMeta, len(i.Accounts))
	copy(accounts, i.Accounts)

	return Instruction{
		Program:  append(ed25519.PublicKey(nil), i.Program...),
		Accounts: accounts,
		Data:     append([]byte(nil), i.Data...),
	}
}

// CompiledInstruction is an instruction whose program and accounts are
// referenced by index into the message's account list.
type CompiledInstruction struct {
	ProgramIndex byte
	Accounts     []byte
	Data         []byte
}
