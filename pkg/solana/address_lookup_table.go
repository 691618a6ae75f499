package solana

import (
	"bytes"
	"crypto/ed25519"
	"slices"
)

// AddressLookupTable is an on-chain list of addresses that v0 messages can
// reference by index instead of listing them in full.
type AddressLookupTable struct {
	PublicKey ed25519.PublicKey
	Addresses []ed25519.PublicKey
}

// indexOf returns the position of address within the table.
func (t AddressLookupTable) indexOf(address ed25519.PublicKey) (byte, bool) {
	for i, candidate := range t.Addresses {
		if bytes.Equal(candidate, address) {
			return byte(i), true
		}
	}
	return 0, false
}

// sortLookupTables returns a copy of tables ordered by table address, so the
// same inputs always compile to the same message.
func sortLookupTables(tables []AddressLookupTable) []AddressLookupTable {
	sorted := slices.Clone(tables)
	slices.SortFunc(sorted, func(a, b AddressLookupTable) int {
		return bytes.Compare(a.PublicKey, b.PublicKey)
	})
	return sorted
}
