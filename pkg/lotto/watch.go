package lotto

import (
	"context"

	"github.com/solotto/solotto-go/pkg/lotto/watch"
)

// WatchDraws returns a watcher for draws of the client's program over the
// configured websocket endpoint and reconnect delay. Callers start it with Run and read Events.
func (c *Client) WatchDraws(ctx context.Context, opts ...watch.Option) (*watch.Watcher, error) {
	source := watch.NewWebsocketSource(c.WebsocketEndpoint(ctx))
	opts = append([]watch.Option{watch.WithReconnectDelay(c.conf.reconnectDelay.Get(ctx))}, opts...)
	return watch.New(source, c.program, opts...)
}
