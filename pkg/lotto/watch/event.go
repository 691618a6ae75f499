package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/solotto/solotto-go/pkg/solana"
)

type EventKind int

const (
	EventConnected EventKind = iota
	EventDraw
	EventError
	EventReconnecting
)

func (k EventKind) String() string {
	switch k {
	case EventConnected:
		return "connected"
	case EventDraw:
		return "draw"
	case EventError:
		return "error"
	case EventReconnecting:
		return "reconnecting"
	}
	return "unknown"
}

// Draw is a finalized transaction in which the program drew a winner.
type Draw struct {
	Signature           solana.Signature
	Slot                uint64
	WinningTicketNumber uint64
}

func (d Draw) String() string {
	return fmt.Sprintf("draw{signature=%s, slot=%d, winning_ticket=%d}", d.Signature, d.Slot, d.WinningTicketNumber)
}

// Event is emitted by a Watcher. Draw is set for EventDraw, Err for
// EventError, and Delay for EventReconnecting.
type Event struct {
	Kind  EventKind
	Draw  *Draw
	Err   error
	Delay time.Duration
}

// Sink is the buffered channel a Watcher publishes to.
type Sink chan Event

func NewSink(size int) Sink {
	return make(Sink, size)
}

// publish blocks until the event is accepted or ctx is done.
func (s Sink) publish(ctx context.Context, e Event) bool {
	select {
	case s <- e:
		return true
	case <-ctx.Done():
		return false
	}
}
