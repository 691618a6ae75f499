package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/solotto/solotto-go/pkg/lotto"
	"github.com/solotto/solotto-go/pkg/solana/lottery"
)

func lotteryCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lottery",
		Short: "Lottery commands",
	}

	cmd.AddCommand(
		lotteryGetCmd(c),
		lotteryInitCmd(c),
		lotteryDrawCmd(c),
		lotteryLockCmd(c),
		lotteryReleaseCmd(c),
	)
	return cmd
}

type lotteryFlags struct {
	authority string
	lotteryId uint64
}

func (f *lotteryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.authority, "authority", "", "lottery authority address")
	cmd.Flags().Uint64Var(&f.lotteryId, "id", 0, "lottery id")
}

func lotteryGetCmd(c *cli) *cobra.Command {
	var flags lotteryFlags
	var gross bool

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show a lottery",
		RunE: func(cmd *cobra.Command, args []string) error {
			authority, err := parseKey("authority", flags.authority)
			if err != nil {
				return err
			}

			state, err := c.client.GetLottery(cmd.Context(), authority, flags.lotteryId, !gross)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), newLotteryView(state))
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&gross, "gross", false, "report the prize pool before the protocol fee")
	return cmd
}

func lotteryInitCmd(c *cli) *cobra.Command {
	var flags lotteryFlags
	var ticketPrice uint64

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Build a transaction that creates a lottery",
		RunE: func(cmd *cobra.Command, args []string) error {
			authority, err := parseKey("authority", flags.authority)
			if err != nil {
				return err
			}
			if ticketPrice == 0 {
				return errors.New("--price is required")
			}

			res, err := c.client.Initialize(cmd.Context(), lotto.NewAccount(authority), ticketPrice, flags.lotteryId, true)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), newTransactionView(res.Built))
		},
	}

	flags.register(cmd)
	cmd.Flags().Uint64Var(&ticketPrice, "price", 0, "ticket price in lamports")
	return cmd
}

func lotteryDrawCmd(c *cli) *cobra.Command {
	var flags lotteryFlags

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Build a transaction that draws the winning ticket",
		RunE: func(cmd *cobra.Command, args []string) error {
			authority, err := parseKey("authority", flags.authority)
			if err != nil {
				return err
			}

			res, err := c.client.RandomDraw(cmd.Context(), lotto.NewAccount(authority), flags.lotteryId, true)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), newTransactionView(res.Built))
		},
	}

	flags.register(cmd)
	return cmd
}

func lotteryLockCmd(c *cli) *cobra.Command {
	var flags lotteryFlags
	var unlock bool

	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Build a transaction that stops, or with --unlock resumes, ticket sales",
		RunE: func(cmd *cobra.Command, args []string) error {
			authority, err := parseKey("authority", flags.authority)
			if err != nil {
				return err
			}

			state := lottery.LockStateLocked
			if unlock {
				state = lottery.LockStateUnlocked
			}

			res, err := c.client.LockLottery(cmd.Context(), lotto.NewAccount(authority), flags.lotteryId, state, true)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), newTransactionView(res.Built))
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&unlock, "unlock", false, "resume ticket sales")
	return cmd
}

func lotteryReleaseCmd(c *cli) *cobra.Command {
	var flags lotteryFlags

	cmd := &cobra.Command{
		Use:   "release",
		Short: "Build a transaction that returns an expired prize to the authority",
		RunE: func(cmd *cobra.Command, args []string) error {
			authority, err := parseKey("authority", flags.authority)
			if err != nil {
				return err
			}

			res, err := c.client.ClaimExpired(cmd.Context(), lotto.NewAccount(authority), flags.lotteryId, true)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), newTransactionView(res.Built))
		},
	}

	flags.register(cmd)
	return cmd
}
