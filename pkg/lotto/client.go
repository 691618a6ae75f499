package lotto

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	xrate "golang.org/x/time/rate"

	"github.com/solotto/solotto-go/pkg/network"
	"github.com/solotto/solotto-go/pkg/rate"
	"github.com/solotto/solotto-go/pkg/solana"
)

const (
	metricsStructName = "lotto.client"

	// MinTicketsPerPurchase and MaxTicketsPerPurchase bound how many tickets
	// fit in a single purchase transaction.
	MinTicketsPerPurchase = 1
	MaxTicketsPerPurchase = 4
)

var (
	ErrLotteryNotFound     = errors.New("lottery not found")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrNoWinner            = errors.New("lottery has no winning ticket")
	ErrInvalidTicketAmount = errors.New("ticket amount must be between 1 and 4")
	ErrNotTicketOwner      = errors.New("signer does not own the ticket")
	ErrLookupTableNotFound = errors.New("address lookup table not found")
	ErrLookupTableInactive = errors.New("address lookup table is deactivated")
)

// Client reads lottery program state and builds, and optionally submits,
// lottery transactions.
type Client struct {
	log  *logrus.Entry
	conf *conf

	program ed25519.PublicKey
	rpc     solana.Client
	network *network.Network
}

// New returns a client for program that talks to the network through rpc.
func New(rpc solana.Client, program ed25519.PublicKey, configProvider ConfigProvider) *Client {
	return newClient(rpc, program, configProvider())
}

// Dial connects to the RPC endpoint and program named by the config.
func Dial(ctx context.Context, configProvider ConfigProvider) (*Client, error) {
	conf := configProvider()

	program, err := solana.PublicKeyFromString(conf.programId.Get(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "invalid program id")
	}

	var opts []solana.ClientOption
	if limit := conf.rpcRateLimit.Get(ctx); limit > 0 {
		opts = append(opts, solana.WithRateLimiter(rate.NewLocalRateLimiter(xrate.Limit(limit))))
	}

	endpoint := solana.ResolveRpcEndpoint(conf.rpcEndpoint.Get(ctx))
	return newClient(solana.New(endpoint, opts...), program, conf), nil
}

func newClient(rpc solana.Client, program ed25519.PublicKey, conf *conf) *Client {
	return &Client{
		log:     logrus.StandardLogger().WithField("type", "lotto/client"),
		conf:    conf,
		program: program,
		rpc:     rpc,
		network: network.New(rpc),
	}
}

// Program returns the lottery program the client targets.
func (c *Client) Program() ed25519.PublicKey {
	return c.program
}

// Network returns the transaction network the client builds and submits with.
func (c *Client) Network() *network.Network {
	return c.network
}

// WebsocketEndpoint returns the endpoint for live subscriptions. Unless one
// is configured, it is derived from the RPC endpoint.
func (c *Client) WebsocketEndpoint(ctx context.Context) string {
	if endpoint := c.conf.wsEndpoint.Get(ctx); endpoint != "" {
		return endpoint
	}
	return solana.WebsocketEndpointFor(c.conf.rpcEndpoint.Get(ctx))
}

func (c *Client) pollOptions(ctx context.Context) []network.PollOption {
	return []network.PollOption{
		network.WithMaxAttempts(int(c.conf.pollAttempts.Get(ctx))),
		network.WithInterval(c.conf.pollInterval.Get(ctx)),
	}
}
