package network

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/solotto/solotto-go/pkg/solana"
)

const (
	metricsStructName = "network"

	DefaultPollAttempts = 10
	DefaultPollInterval = 3 * time.Second
)

// Network builds, prices, submits and confirms transactions against a single
// RPC endpoint. It holds no mutable state, so one instance can serve
// concurrent callers.
type Network struct {
	log    *logrus.Entry
	client solana.Client

	pollAttempts int
	pollInterval time.Duration
}

type Option func(*Network)

// WithPollDefaults overrides the attempt count and interval Poll uses when a
// call does not specify its own.
func WithPollDefaults(attempts int, interval time.Duration) Option {
	return func(n *Network) {
		if attempts > 0 {
			n.pollAttempts = attempts
		}
		if interval > 0 {
			n.pollInterval = interval
		}
	}
}

func New(client solana.Client, opts ...Option) *Network {
	n := &Network{
		log:          logrus.StandardLogger().WithField("type", "network"),
		client:       client,
		pollAttempts: DefaultPollAttempts,
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Client returns the RPC client the network was created with.
func (n *Network) Client() solana.Client {
	return n.client
}
