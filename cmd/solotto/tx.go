package main

import (
	"encoding/base64"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/solotto/solotto-go/pkg/network"
	"github.com/solotto/solotto-go/pkg/solana"
)

func txCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Transaction commands",
	}

	cmd.AddCommand(
		txStatusCmd(c),
		txSendCmd(c),
		txLookupTableCmd(c),
	)
	return cmd
}

func (c *cli) pollOptions() []network.PollOption {
	return []network.PollOption{
		network.WithMaxAttempts(int(c.config.PollAttempts)),
		network.WithInterval(c.config.PollInterval),
	}
}

func txStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status <signature>",
		Short: "Wait for a transaction to finalize",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sig, err := solana.SignatureFromString(args[0])
			if err != nil {
				return errors.Wrap(err, "invalid signature")
			}

			outcome, err := c.client.Network().Poll(cmd.Context(), sig, c.pollOptions()...)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), newOutcomeView(outcome))
		},
	}
}

func txSendCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "send <base64 transaction>",
		Short: "Submit a signed transaction and wait for it to finalize",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := base64.StdEncoding.DecodeString(args[0])
			if err != nil {
				return errors.Wrap(err, "invalid base64 transaction")
			}

			var txn solana.Transaction
			if err := txn.Unmarshal(raw); err != nil {
				return errors.Wrap(err, "invalid transaction")
			}

			_, outcome, err := c.client.Network().SendAndConfirm(cmd.Context(), txn, c.pollOptions()...)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), newOutcomeView(outcome))
		},
	}
}

func txLookupTableCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup-table <address>",
		Short: "Show the addresses held by an address lookup table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := parseKey("address", args[0])
			if err != nil {
				return err
			}

			table, err := c.client.GetLookupTable(cmd.Context(), address)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), newLookupTableView(table))
		},
	}
}
