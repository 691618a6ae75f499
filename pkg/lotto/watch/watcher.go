package watch

import (
	"context"
	"crypto/ed25519"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/solotto/solotto-go/pkg/metrics"
)

const (
	winningTicketLogPrefix = "Program log: Winning ticket number: "
	drawFeeLogPrefix       = "Program log: Fee amount: "

	defaultSinkSize      = 64
	defaultSeenCacheSize = 1024
)

var errSubscriptionClosed = errors.New("subscription closed")

type Option func(*Watcher)

func WithReconnectDelay(delay time.Duration) Option {
	return func(w *Watcher) {
		w.policy = NewReconnectPolicy(delay)
	}
}

func WithSinkSize(size int) Option {
	return func(w *Watcher) {
		w.sinkSize = size
	}
}

func WithSeenCacheSize(size int) Option {
	return func(w *Watcher) {
		w.seenSize = size
	}
}

// Watcher follows finalized draws of a lottery program and reconnects
// whenever the subscription fails.
type Watcher struct {
	log     *logrus.Entry
	source  LogSource
	program ed25519.PublicKey
	policy  *ReconnectPolicy

	sink     Sink
	sinkSize int

	seen     *lru.Cache
	seenSize int
}

func New(source LogSource, program ed25519.PublicKey, opts ...Option) (*Watcher, error) {
	w := &Watcher{
		log: logrus.StandardLogger().WithFields(logrus.Fields{
			"type":    "lotto/watch",
			"program": base58.Encode(program),
		}),
		source:   source,
		program:  program,
		policy:   NewReconnectPolicy(DefaultReconnectDelay),
		sinkSize: defaultSinkSize,
		seenSize: defaultSeenCacheSize,
	}
	for _, o := range opts {
		o(w)
	}

	seen, err := lru.New(w.seenSize)
	if err != nil {
		return nil, errors.Wrap(err, "error creating signature cache")
	}
	w.seen = seen
	w.sink = NewSink(w.sinkSize)

	return w, nil
}

// Events returns the channel events are published to. It is closed when Run
// returns.
func (w *Watcher) Events() <-chan Event {
	return w.sink
}

func (w *Watcher) State() State {
	return w.policy.State()
}

// Run watches until ctx is done, which is the only way it returns.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.sink)

	for {
		err := w.watch(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		delay := w.policy.OnError()
		w.log.WithError(err).WithField("delay", delay).Warn("subscription failed, reconnecting")

		if !w.sink.publish(ctx, Event{Kind: EventError, Err: err}) {
			return ctx.Err()
		}
		if !w.sink.publish(ctx, Event{Kind: EventReconnecting, Delay: delay}) {
			return ctx.Err()
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		w.policy.OnRetry()
	}
}

func (w *Watcher) watch(ctx context.Context) error {
	w.log.Debug("connecting")

	sub, err := w.source.Subscribe(ctx, w.program)
	if err != nil {
		return err
	}
	defer sub.Close()

	w.policy.OnConnected()
	w.log.Info("connected")
	if !w.sink.publish(ctx, Event{Kind: EventConnected}) {
		return ctx.Err()
	}

	for {
		notification, err := sub.Recv(ctx)
		if err != nil {
			return err
		}
		if notification == nil {
			return errSubscriptionClosed
		}

		draw, ok := ParseDraw(notification)
		if !ok {
			continue
		}

		if found, _ := w.seen.ContainsOrAdd(draw.Signature, struct{}{}); found {
			continue
		}

		w.log.WithFields(logrus.Fields{
			"signature":      draw.Signature.String(),
			"winning_ticket": draw.WinningTicketNumber,
		}).Info("draw observed")
		metrics.RecordEvent(ctx, "LotteryDraw", map[string]interface{}{
			"signature":      draw.Signature.String(),
			"winning_ticket": draw.WinningTicketNumber,
			"slot":           draw.Slot,
		})

		if !w.sink.publish(ctx, Event{Kind: EventDraw, Draw: draw}) {
			return ctx.Err()
		}
	}
}

// ParseDraw reports whether the notification's logs show a draw. The winning
// ticket is zero when the program did not log one.
func ParseDraw(n *Notification) (*Draw, bool) {
	var isDraw bool
	var winningTicket uint64

	for _, line := range n.Logs {
		if idx := strings.Index(line, winningTicketLogPrefix); idx >= 0 {
			winningTicket = parseLeadingUint(line[idx+len(winningTicketLogPrefix):])
		}
		if strings.Contains(line, drawFeeLogPrefix) {
			isDraw = true
		}
	}

	if !isDraw {
		return nil, false
	}

	return &Draw{
		Signature:           n.Signature,
		Slot:                n.Slot,
		WinningTicketNumber: winningTicket,
	}, true
}

func parseLeadingUint(s string) uint64 {
	s = strings.TrimSpace(s)

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	v, err := strconv.ParseUint(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return v
}
