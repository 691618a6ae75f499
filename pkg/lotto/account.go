package lotto

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
)

// Account identifies a participant. When PrivateKey is set, write operations
// sign and submit on the account's behalf. Otherwise they only build the
// transaction.
type Account struct {
	PublicKey  ed25519.PublicKey
	PrivateKey ed25519.PrivateKey
}

// NewAccount returns an account that can only be used to build transactions.
func NewAccount(publicKey ed25519.PublicKey) *Account {
	return &Account{PublicKey: publicKey}
}

// NewSigningAccount returns an account backed by privateKey.
func NewSigningAccount(privateKey ed25519.PrivateKey) *Account {
	return &Account{
		PublicKey:  privateKey.Public().(ed25519.PublicKey),
		PrivateKey: privateKey,
	}
}

func (a *Account) CanSign() bool {
	return a != nil && len(a.PrivateKey) == ed25519.PrivateKeySize
}

func (a *Account) String() string {
	return base58.Encode(a.PublicKey)
}
