package watch

import (
	"context"
	"crypto/ed25519"

	"github.com/solotto/solotto-go/pkg/solana"
)

// Notification is a single log notification for a transaction that mentions
// the program.
type Notification struct {
	Signature solana.Signature
	Slot      uint64
	Err       interface{}
	Logs      []string
}

// Subscription yields notifications until it fails or is closed.
type Subscription interface {
	Recv(ctx context.Context) (*Notification, error)
	Close()
}

// LogSource opens finalized log subscriptions for transactions mentioning a
// program.
type LogSource interface {
	Subscribe(ctx context.Context, program ed25519.PublicKey) (Subscription, error)
}
