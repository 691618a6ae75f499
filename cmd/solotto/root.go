package main

import (
	"crypto/ed25519"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/solotto/solotto-go/pkg/lotto"
	"github.com/solotto/solotto-go/pkg/metrics"
	"github.com/solotto/solotto-go/pkg/solana"
)

type cli struct {
	configPath string

	config *Config
	client *lotto.Client
	nr     *newrelic.Application
	endTxn func()
}

// newRootCmd returns the command tree along with the state its commands share.
// The caller runs teardown once execution returns, whether or not it failed.
func newRootCmd() (*cobra.Command, *cli) {
	c := &cli{}

	cmd := &cobra.Command{
		Use:           "solotto",
		Short:         "Read and build transactions for the solotto lottery program",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&c.configPath, "config", "config.yaml", "configuration file path")

	cmd.AddCommand(
		lotteryCmd(c),
		ticketCmd(c),
		txCmd(c),
		deriveCmd(c),
		watchCmd(c),
	)

	return cmd, c
}

func (c *cli) setup(cmd *cobra.Command) error {
	config, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.config = config

	var formatter logrus.Formatter = &logrus.JSONFormatter{}
	if len(config.NewRelicLicenseKey) > 0 {
		nr, err := newrelic.NewApplication(
			newrelic.ConfigFromEnvironment(),
			newrelic.ConfigAppName(config.AppName),
			newrelic.ConfigLicense(config.NewRelicLicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			return errors.Wrap(err, "error connecting to new relic")
		}

		c.nr = nr
		formatter = metrics.NewCustomNewRelicLogFormatter(nr, formatter)
	}
	configureLogger(config, formatter)

	ctx, endTxn := metrics.StartTransaction(cmd.Context(), c.nr, cmd.CommandPath())
	c.endTxn = endTxn
	cmd.SetContext(ctx)

	client, err := lotto.Dial(ctx, lotto.WithStaticConfigs(config.settings()))
	if err != nil {
		return err
	}
	c.client = client

	return nil
}

func (c *cli) teardown() {
	if c.endTxn != nil {
		c.endTxn()
		c.endTxn = nil
	}
	if c.nr != nil {
		c.nr.Shutdown(newRelicShutdownTimeout)
		c.nr = nil
	}
}

func parseKey(name, value string) (ed25519.PublicKey, error) {
	if value == "" {
		return nil, errors.Errorf("--%s is required", name)
	}

	key, err := solana.PublicKeyFromString(value)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid --%s", name)
	}
	return key, nil
}
