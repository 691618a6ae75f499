package watch

import (
	"context"
	"crypto/ed25519"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/pkg/errors"

	"github.com/solotto/solotto-go/pkg/solana"
)

type websocketSource struct {
	endpoint string
}

// NewWebsocketSource returns a LogSource backed by the node's pubsub endpoint.
func NewWebsocketSource(endpoint string) LogSource {
	return &websocketSource{endpoint: endpoint}
}

func (s *websocketSource) Subscribe(ctx context.Context, program ed25519.PublicKey) (Subscription, error) {
	client, err := ws.Connect(ctx, s.endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "error connecting to websocket")
	}

	sub, err := client.LogsSubscribeMentions(solanago.PublicKeyFromBytes(program), rpc.CommitmentFinalized)
	if err != nil {
		client.Close()
		return nil, errors.Wrap(err, "error subscribing to program logs")
	}

	return &websocketSubscription{
		client: client,
		sub:    sub,
	}, nil
}

type websocketSubscription struct {
	client *ws.Client
	sub    *ws.LogSubscription
}

func (s *websocketSubscription) Recv(ctx context.Context) (*Notification, error) {
	res, err := s.sub.Recv(ctx)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, errors.New("subscription closed")
	}

	var sig solana.Signature
	copy(sig[:], res.Value.Signature[:])

	return &Notification{
		Signature: sig,
		Slot:      res.Context.Slot,
		Err:       res.Value.Err,
		Logs:      res.Value.Logs,
	}, nil
}

func (s *websocketSubscription) Close() {
	s.sub.Unsubscribe()
	s.client.Close()
}
