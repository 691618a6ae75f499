package watch

import (
	"sync"
	"time"
)

// DefaultReconnectDelay is how long the watcher backs off after a failed or
// dropped subscription.
const DefaultReconnectDelay = 5 * time.Second

type State int

const (
	StateConnecting State = iota
	StateConnected
	StateBackingOff
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateBackingOff:
		return "backing-off"
	}
	return "unknown"
}

// ReconnectPolicy tracks the subscription lifecycle. Any error moves it to
// backing-off for a fixed delay, after which it returns to connecting. There
// is no attempt limit and the delay never grows.
type ReconnectPolicy struct {
	mu    sync.Mutex
	state State
	delay time.Duration
}

func NewReconnectPolicy(delay time.Duration) *ReconnectPolicy {
	if delay <= 0 {
		delay = DefaultReconnectDelay
	}
	return &ReconnectPolicy{
		state: StateConnecting,
		delay: delay,
	}
}

func (p *ReconnectPolicy) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *ReconnectPolicy) Delay() time.Duration {
	return p.delay
}

// OnConnected records a successful subscription.
func (p *ReconnectPolicy) OnConnected() {
	p.mu.Lock()
	p.state = StateConnected
	p.mu.Unlock()
}

// OnError records a failure and returns how long to wait before retrying.
func (p *ReconnectPolicy) OnError() time.Duration {
	p.mu.Lock()
	p.state = StateBackingOff
	p.mu.Unlock()
	return p.delay
}

// OnRetry ends a back off. It is a no-op in any other state.
func (p *ReconnectPolicy) OnRetry() {
	p.mu.Lock()
	if p.state == StateBackingOff {
		p.state = StateConnecting
	}
	p.mu.Unlock()
}
