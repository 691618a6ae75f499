package main

import (
	"context"

	"github.com/spf13/cobra"
)

func watchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print lottery draws as they finalize until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			w, err := c.client.WatchDraws(ctx)
			if err != nil {
				return err
			}

			done := make(chan error, 1)
			go func() {
				done <- w.Run(ctx)
			}()

			for e := range w.Events() {
				if err := render(cmd.OutOrStdout(), newEventView(e)); err != nil {
					return err
				}
			}

			if err := <-done; err != context.Canceled {
				return err
			}
			return nil
		},
	}
}
