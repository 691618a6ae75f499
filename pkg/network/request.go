package network

import (
	"crypto/ed25519"

	"github.com/solotto/solotto-go/pkg/solana"
)

// PriorityLevel is a priority fee tier understood by getPriorityFeeEstimate.
type PriorityLevel string

const (
	PriorityMin       PriorityLevel = "Min"
	PriorityLow       PriorityLevel = "Low"
	PriorityMedium    PriorityLevel = "Medium"
	PriorityHigh      PriorityLevel = "High"
	PriorityVeryHigh  PriorityLevel = "VeryHigh"
	PriorityUnsafeMax PriorityLevel = "UnsafeMax"

	// PriorityExtreme is accepted as an alias and is sent as VeryHigh.
	PriorityExtreme PriorityLevel = "Extreme"
)

func (p PriorityLevel) normalize() PriorityLevel {
	switch p {
	case "":
		return PriorityLow
	case PriorityExtreme:
		return PriorityVeryHigh
	}
	return p
}

const (
	DefaultTolerance = 1.1

	simulationComputeUnitPrice = 10_000
)

// TransactionRequest describes a transaction to build. The zero value of every
// optional field selects the default behaviour: no extra signers, the Low
// priority tier, a 1.1 compute tolerance, an in-memory transaction, compute
// and fee instructions included, no lookup table and no memo.
type TransactionRequest struct {
	Payer        ed25519.PublicKey
	Instructions []solana.Instruction

	Signers   []ed25519.PrivateKey
	Priority  PriorityLevel
	Tolerance float64

	Serialize bool
	// Encode returns the base64 encoded wire bytes and implies Serialize.
	Encode bool

	DisableCompute bool
	DisableFees    bool

	LookupTable *solana.AddressLookupTable
	Memo        string
}

func (r *TransactionRequest) tolerance() float64 {
	if r.Tolerance == 0 {
		return DefaultTolerance
	}
	return r.Tolerance
}

func (r *TransactionRequest) lookupTables() []solana.AddressLookupTable {
	if r.LookupTable == nil {
		return nil
	}
	return []solana.AddressLookupTable{*r.LookupTable}
}

// Form is the representation a BuiltTransaction was produced in.
type Form uint8

const (
	FormTransaction Form = iota
	FormSerialized
	FormEncoded
)

func (f Form) String() string {
	switch f {
	case FormTransaction:
		return "transaction"
	case FormSerialized:
		return "serialized"
	case FormEncoded:
		return "encoded"
	}
	return "unknown"
}

// BuiltTransaction is the result of a successful build. Transaction is always
// populated. Raw is set for the serialized and encoded forms, and Encoded only
// for the encoded form.
type BuiltTransaction struct {
	Form        Form
	Transaction solana.Transaction
	Raw         []byte
	Encoded     string
}
