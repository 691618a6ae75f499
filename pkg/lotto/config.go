package lotto

import (
	"time"

	"github.com/solotto/solotto-go/pkg/config"
	"github.com/solotto/solotto-go/pkg/config/env"
	"github.com/solotto/solotto-go/pkg/config/memory"
	"github.com/solotto/solotto-go/pkg/lotto/watch"
	"github.com/solotto/solotto-go/pkg/network"
	"github.com/solotto/solotto-go/pkg/solana"
)

const (
	envConfigPrefix = "SOLOTTO_"

	RpcEndpointConfigEnvName = envConfigPrefix + "RPC_ENDPOINT"
	defaultRpcEndpoint       = string(solana.ClusterDevnet)

	WsEndpointConfigEnvName = envConfigPrefix + "WS_ENDPOINT"
	defaultWsEndpoint       = "" // derived from the rpc endpoint

	ProgramIdConfigEnvName = envConfigPrefix + "PROGRAM_ID"
	defaultProgramId       = "invalid" // ensure something valid is set

	PollAttemptsConfigEnvName = envConfigPrefix + "POLL_ATTEMPTS"
	defaultPollAttempts       = network.DefaultPollAttempts

	PollIntervalConfigEnvName = envConfigPrefix + "POLL_INTERVAL"
	defaultPollInterval       = network.DefaultPollInterval

	ComputeToleranceConfigEnvName = envConfigPrefix + "COMPUTE_TOLERANCE"
	defaultComputeTolerance       = 1.2

	PriorityConfigEnvName = envConfigPrefix + "PRIORITY"
	defaultPriority       = string(network.PriorityLow)

	RpcRateLimitConfigEnvName = envConfigPrefix + "RPC_RATE_LIMIT"
	defaultRpcRateLimit       = 0 // unlimited

	ReconnectDelayConfigEnvName = envConfigPrefix + "RECONNECT_DELAY"
	defaultReconnectDelay       = watch.DefaultReconnectDelay
)

type conf struct {
	rpcEndpoint  config.String
	wsEndpoint   config.String
	rpcRateLimit config.Float64

	programId config.String

	pollAttempts config.Uint64
	pollInterval config.Duration

	computeTolerance config.Float64
	priority         config.String

	reconnectDelay config.Duration
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			rpcEndpoint:  env.NewStringConfig(RpcEndpointConfigEnvName, defaultRpcEndpoint),
			wsEndpoint:   env.NewStringConfig(WsEndpointConfigEnvName, defaultWsEndpoint),
			rpcRateLimit: env.NewFloat64Config(RpcRateLimitConfigEnvName, defaultRpcRateLimit),

			programId: env.NewStringConfig(ProgramIdConfigEnvName, defaultProgramId),

			pollAttempts: env.NewUint64Config(PollAttemptsConfigEnvName, defaultPollAttempts),
			pollInterval: env.NewDurationConfig(PollIntervalConfigEnvName, defaultPollInterval),

			computeTolerance: env.NewFloat64Config(ComputeToleranceConfigEnvName, defaultComputeTolerance),
			priority:         env.NewStringConfig(PriorityConfigEnvName, defaultPriority),

			reconnectDelay: env.NewDurationConfig(ReconnectDelayConfigEnvName, defaultReconnectDelay),
		}
	}
}

// Settings are explicit values for every config. Zero values fall back to the
// defaults.
type Settings struct {
	RpcEndpoint  string
	WsEndpoint   string
	RpcRateLimit float64

	ProgramId string

	PollAttempts uint64
	PollInterval time.Duration

	ComputeTolerance float64
	Priority         string

	ReconnectDelay time.Duration
}

// WithStaticConfigs returns configuration with fixed values, for callers that
// resolve settings themselves (for example, from flags).
func WithStaticConfigs(s *Settings) ConfigProvider {
	return func() *conf {
		return &conf{
			rpcEndpoint:  memory.NewStringConfig(s.RpcEndpoint, defaultRpcEndpoint),
			wsEndpoint:   memory.NewStringConfig(s.WsEndpoint, defaultWsEndpoint),
			rpcRateLimit: memory.NewFloat64Config(s.RpcRateLimit, defaultRpcRateLimit),

			programId: memory.NewStringConfig(s.ProgramId, defaultProgramId),

			pollAttempts: memory.NewUint64Config(s.PollAttempts, defaultPollAttempts),
			pollInterval: memory.NewDurationConfig(s.PollInterval, defaultPollInterval),

			computeTolerance: memory.NewFloat64Config(s.ComputeTolerance, defaultComputeTolerance),
			priority:         memory.NewStringConfig(s.Priority, defaultPriority),

			reconnectDelay: memory.NewDurationConfig(s.ReconnectDelay, defaultReconnectDelay),
		}
	}
}
