package main

import (
	"github.com/spf13/cobra"

	"github.com/solotto/solotto-go/pkg/solana/lottery"
)

type derivedView struct {
	Address string `json:"address"`
	Bump    uint8  `json:"bump"`
}

func deriveCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive program addresses",
	}

	cmd.AddCommand(
		deriveLotteryCmd(c),
		deriveTicketCmd(c),
		derivePrizePoolCmd(c),
	)
	return cmd
}

func deriveLotteryCmd(c *cli) *cobra.Command {
	var flags lotteryFlags

	cmd := &cobra.Command{
		Use:   "lottery",
		Short: "Derive a lottery address",
		RunE: func(cmd *cobra.Command, args []string) error {
			authority, err := parseKey("authority", flags.authority)
			if err != nil {
				return err
			}

			address, bump, err := lottery.GetLotteryAddress(&lottery.GetLotteryAddressArgs{
				Program:   c.client.Program(),
				Authority: authority,
				LotteryId: flags.lotteryId,
			})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), &derivedView{Address: encodeKey(address), Bump: bump})
		},
	}

	flags.register(cmd)
	return cmd
}

func deriveTicketCmd(c *cli) *cobra.Command {
	var lotteryFlag, buyerFlag, receiptFlag string

	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Derive a ticket address",
		RunE: func(cmd *cobra.Command, args []string) error {
			lotteryAddress, err := parseKey("lottery", lotteryFlag)
			if err != nil {
				return err
			}
			buyer, err := parseKey("buyer", buyerFlag)
			if err != nil {
				return err
			}
			receipt, err := parseKey("receipt", receiptFlag)
			if err != nil {
				return err
			}

			address, bump, err := lottery.GetTicketAddress(&lottery.GetTicketAddressArgs{
				Program: c.client.Program(),
				Lottery: lotteryAddress,
				Buyer:   buyer,
				Receipt: receipt,
			})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), &derivedView{Address: encodeKey(address), Bump: bump})
		},
	}

	cmd.Flags().StringVar(&lotteryFlag, "lottery", "", "lottery address")
	cmd.Flags().StringVar(&buyerFlag, "buyer", "", "buyer address")
	cmd.Flags().StringVar(&receiptFlag, "receipt", "", "ticket receipt address")
	return cmd
}

func derivePrizePoolCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "prize-pool",
		Short: "Derive the program's prize pool address",
		RunE: func(cmd *cobra.Command, args []string) error {
			address, bump, err := lottery.GetPrizePoolAddress(&lottery.GetPrizePoolAddressArgs{
				Program: c.client.Program(),
			})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), &derivedView{Address: encodeKey(address), Bump: bump})
		},
	}
}
