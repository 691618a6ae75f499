package system

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
)

// https://explorer.solana.com/address/11111111111111111111111111111111
var SystemAccount ed25519.PublicKey

// RentSysVar points to the system variable "Rent"
//
// Source: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/sysvar/rent.rs#L11
var RentSysVar ed25519.PublicKey

// SlotHashesSysVar points to the system variable "Slot Hashes". The lottery
// program reads it as its randomness source when drawing a winner.
//
// Source: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/program/src/sysvar/slot_hashes.rs
var SlotHashesSysVar ed25519.PublicKey

// ClockSysVar points to the system variable "Clock"
var ClockSysVar ed25519.PublicKey

func init() {
	RentSysVar = mustDecode("SysvarRent111111111111111111111111111111111")
	SlotHashesSysVar = mustDecode("SysvarS1otHashes111111111111111111111111111")
	ClockSysVar = mustDecode("SysvarC1ock11111111111111111111111111111111")
	SystemAccount = mustDecode("11111111111111111111111111111111")
}

func mustDecode(s string) ed25519.PublicKey {
	decoded, err := base58.Decode(s)
	if err != nil {
		panic(err)
	}
	return decoded
}
