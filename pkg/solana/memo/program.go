package memo

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/solotto/solotto-go/pkg/solana"
)

// ProgramKey is the address of the SPL memo program (v2).
//
// Current key: MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr
var ProgramKey ed25519.PublicKey

// LegacyProgramKey is the original memo program, Memo1UhkJRfHyvLMcVucJwxXeuD728EqVDDwQDxFMNo.
// Memos against it are still recognized when decompiling.
var LegacyProgramKey = ed25519.PublicKey{5, 74, 83, 80, 248, 93, 200, 130, 214, 20, 165, 86, 114, 120, 138, 41, 109, 223, 30, 171, 171, 208, 166, 6, 120, 136, 73, 50, 244, 238, 246, 160}

func init() {
	var err error
	ProgramKey, err = base58.Decode("MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr")
	if err != nil {
		panic(err)
	}
}

// Instruction creates a memo instruction. Each signer must sign the
// transaction for the memo program to accept it.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/master/memo/program/src/processor.rs
func Instruction(data string, signers ...ed25519.PublicKey) solana.Instruction {
	accounts := make([]solana.AccountMeta, 0, len(signers))
	for _, signer := range signers {
		accounts = append(accounts, solana.NewAccountMeta(signer, true))
	}

	return solana.NewInstruction(
		ProgramKey,
		[]byte(data),
		accounts...,
	)
}

type DecompiledMemo struct {
	Data    []byte
	Signers []ed25519.PublicKey
}

func DecompileMemo(m solana.Message, index int) (*DecompiledMemo, error) {
	if index >= len(m.Instructions) {
		return nil, errors.Errorf("instruction doesn't exist at %d", index)
	}

	i := m.Instructions[index]

	program := m.Accounts[i.ProgramIndex]
	if !bytes.Equal(program, ProgramKey) && !bytes.Equal(program, LegacyProgramKey) {
		return nil, solana.ErrIncorrectProgram
	}

	decompiled := &DecompiledMemo{Data: i.Data}
	for _, accountIndex := range i.Accounts {
		if int(accountIndex) >= len(m.Accounts) {
			return nil, errors.Errorf("memo signer is not a static account: %d", accountIndex)
		}
		decompiled.Signers = append(decompiled.Signers, m.Accounts[accountIndex])
	}

	return decompiled, nil
}
