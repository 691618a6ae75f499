package lotto

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithStaticConfigs_Defaults(t *testing.T) {
	ctx := context.Background()
	conf := WithStaticConfigs(&Settings{})()

	assert.Equal(t, "devnet", conf.rpcEndpoint.Get(ctx))
	assert.Empty(t, conf.wsEndpoint.Get(ctx))
	assert.EqualValues(t, 0, conf.rpcRateLimit.Get(ctx))
	assert.EqualValues(t, 10, conf.pollAttempts.Get(ctx))
	assert.Equal(t, 3*time.Second, conf.pollInterval.Get(ctx))
	assert.Equal(t, 1.2, conf.computeTolerance.Get(ctx))
	assert.Equal(t, "Low", conf.priority.Get(ctx))
	assert.Equal(t, 5*time.Second, conf.reconnectDelay.Get(ctx))
}

func TestWithStaticConfigs_Overrides(t *testing.T) {
	ctx := context.Background()
	conf := WithStaticConfigs(&Settings{
		RpcEndpoint:      "http://localhost:8899",
		PollAttempts:     3,
		PollInterval:     time.Second,
		ComputeTolerance: 1.5,
		Priority:         "High",
		ReconnectDelay:   time.Minute,
	})()

	assert.Equal(t, "http://localhost:8899", conf.rpcEndpoint.Get(ctx))
	assert.EqualValues(t, 3, conf.pollAttempts.Get(ctx))
	assert.Equal(t, time.Second, conf.pollInterval.Get(ctx))
	assert.Equal(t, 1.5, conf.computeTolerance.Get(ctx))
	assert.Equal(t, "High", conf.priority.Get(ctx))
	assert.Equal(t, time.Minute, conf.reconnectDelay.Get(ctx))
}

func TestWithEnvConfigs(t *testing.T) {
	ctx := context.Background()

	t.Setenv(RpcEndpointConfigEnvName, "http://localhost:8899")
	t.Setenv(PollIntervalConfigEnvName, "500ms")
	t.Setenv(ComputeToleranceConfigEnvName, "1.3")
	t.Setenv(ReconnectDelayConfigEnvName, "10s")

	conf := WithEnvConfigs()()
	assert.Equal(t, "http://localhost:8899", conf.rpcEndpoint.Get(ctx))
	assert.Equal(t, 500*time.Millisecond, conf.pollInterval.Get(ctx))
	assert.Equal(t, 1.3, conf.computeTolerance.Get(ctx))
	assert.Equal(t, 10*time.Second, conf.reconnectDelay.Get(ctx))
	assert.Equal(t, "Low", conf.priority.Get(ctx))
}

func TestDial_InvalidProgram(t *testing.T) {
	_, err := Dial(context.Background(), WithStaticConfigs(&Settings{}))
	assert.Error(t, err)
}
