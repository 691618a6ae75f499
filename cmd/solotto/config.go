package main

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/solotto/solotto-go/pkg/lotto"
)

// Config is the CLI configuration. Values come from the config file, with the
// environment taking precedence.
type Config struct {
	LogLevel string `mapstructure:"log_level"`
	AppName  string `mapstructure:"app_name"`

	NewRelicLicenseKey string `mapstructure:"new_relic_license_key"`

	RpcEndpoint  string  `mapstructure:"rpc_endpoint"`
	WsEndpoint   string  `mapstructure:"ws_endpoint"`
	RpcRateLimit float64 `mapstructure:"rpc_rate_limit"`

	ProgramId string `mapstructure:"program_id"`

	PollAttempts uint64        `mapstructure:"poll_attempts"`
	PollInterval time.Duration `mapstructure:"poll_interval"`

	ComputeTolerance float64 `mapstructure:"compute_tolerance"`
	Priority         string  `mapstructure:"priority"`

	ReconnectDelay time.Duration `mapstructure:"reconnect_delay"`
}

var defaultConfig = Config{
	LogLevel: "info",
	AppName:  "solotto",
}

var envBindings = map[string]string{
	"log_level":             "LOG_LEVEL",
	"app_name":              "APP_NAME",
	"new_relic_license_key": "NEW_RELIC_LICENSE_KEY",

	"rpc_endpoint":   lotto.RpcEndpointConfigEnvName,
	"ws_endpoint":    lotto.WsEndpointConfigEnvName,
	"rpc_rate_limit": lotto.RpcRateLimitConfigEnvName,

	"program_id": lotto.ProgramIdConfigEnvName,

	"poll_attempts": lotto.PollAttemptsConfigEnvName,
	"poll_interval": lotto.PollIntervalConfigEnvName,

	"compute_tolerance": lotto.ComputeToleranceConfigEnvName,
	"priority":          lotto.PriorityConfigEnvName,

	"reconnect_delay": lotto.ReconnectDelayConfigEnvName,
}

// loadConfig reads configPath, when it exists, and overlays the environment.
func loadConfig(configPath string) (*Config, error) {
	v := viper.New()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, errors.Wrapf(err, "error binding %s", env)
		}
	}

	// viper only reports a missing file when it searched for one, so an
	// explicit path that does not exist is skipped here.
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.Wrap(err, "failed to load config")
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "failed to check if config exists")
		}
	}

	// A base58 key made only of digits reads back from YAML as a number,
	// which would be formatted into a different key on decode.
	if raw := v.Get("program_id"); raw != nil {
		if _, ok := raw.(string); !ok {
			return nil, errors.Errorf("program_id must be a quoted string, got %v", raw)
		}
	}

	config := defaultConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

func (c *Config) settings() *lotto.Settings {
	return &lotto.Settings{
		RpcEndpoint:      c.RpcEndpoint,
		WsEndpoint:       c.WsEndpoint,
		RpcRateLimit:     c.RpcRateLimit,
		ProgramId:        c.ProgramId,
		PollAttempts:     c.PollAttempts,
		PollInterval:     c.PollInterval,
		ComputeTolerance: c.ComputeTolerance,
		Priority:         c.Priority,
		ReconnectDelay:   c.ReconnectDelay,
	}
}

func configureLogger(config *Config, formatter logrus.Formatter) {
	logrus.SetFormatter(formatter)

	level, err := logrus.ParseLevel(strings.ToLower(config.LogLevel))
	if err != nil {
		logrus.StandardLogger().WithField("log_level", config.LogLevel).Warn("unknown log level, ignoring")
	} else {
		logrus.SetLevel(level)
	}

	logrus.SetOutput(os.Stderr)
}
