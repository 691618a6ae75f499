package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/solotto/solotto-go/pkg/config"
	"github.com/solotto/solotto-go/pkg/config/wrapper"
)

// ErrInduced is returned by Get while the config is inducing errors.
var ErrInduced = errors.New("memory config: induced error")

// Config holds a value in memory. It backs static settings and is the fake
// source used by tests.
type Config struct {
	stateMu  sync.RWMutex
	value    interface{}
	inducing bool
	shutdown bool
}

// NewConfig returns a new in memory config. A nil value means no value is set.
func NewConfig(value interface{}) *Config {
	return &Config{value: value}
}

// Get implements config.Config.Get
func (c *Config) Get(_ context.Context) (interface{}, error) {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()

	switch {
	case c.shutdown:
		return nil, config.ErrShutdown
	case c.inducing:
		return nil, ErrInduced
	case c.value == nil:
		return nil, config.ErrNoValue
	}
	return c.value, nil
}

// Shutdown implements config.Config.Shutdown
func (c *Config) Shutdown() {
	c.update(func() { c.shutdown = true })
}

// SetValue sets the value that should be returned on subsequent Get calls
func (c *Config) SetValue(value interface{}) {
	c.update(func() { c.value = value })
}

// ClearValue makes subsequent Get calls return config.ErrNoValue.
func (c *Config) ClearValue() {
	c.update(func() { c.value = nil })
}

// InduceErrors toggles whether Get fails with ErrInduced.
func (c *Config) InduceErrors(enabled bool) {
	c.update(func() { c.inducing = enabled })
}

func (c *Config) update(fn func()) {
	c.stateMu.Lock()
	fn()
	c.stateMu.Unlock()
}

// unsetIfZero maps the zero value of T to nil, so a zero setting falls back
// to the default.
func unsetIfZero[T comparable](v T) interface{} {
	var zero T
	if v == zero {
		return nil
	}
	return v
}

// NewUint64Config creates a fixed uint64 config. Zero selects defaultValue.
func NewUint64Config(value, defaultValue uint64) config.Uint64 {
	return wrapper.NewUint64Config(NewConfig(unsetIfZero(value)), defaultValue)
}

// NewFloat64Config creates a fixed float64 config. Zero selects defaultValue.
func NewFloat64Config(value, defaultValue float64) config.Float64 {
	return wrapper.NewFloat64Config(NewConfig(unsetIfZero(value)), defaultValue)
}

// NewStringConfig creates a fixed string config. An empty value selects
// defaultValue.
func NewStringConfig(value, defaultValue string) config.String {
	return wrapper.NewStringConfig(NewConfig(unsetIfZero(value)), defaultValue)
}

// NewDurationConfig creates a fixed duration config. Zero selects defaultValue.
func NewDurationConfig(value, defaultValue time.Duration) config.Duration {
	return wrapper.NewDurationConfig(NewConfig(unsetIfZero(value)), defaultValue)
}
