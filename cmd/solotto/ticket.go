package main

import (
	"crypto/ed25519"

	"github.com/spf13/cobra"

	"github.com/solotto/solotto-go/pkg/lotto"
)

func ticketCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Ticket commands",
	}

	cmd.AddCommand(
		ticketGetCmd(c),
		ticketListCmd(c),
		ticketBuyCmd(c),
		ticketClaimCmd(c),
	)
	return cmd
}

func ticketGetCmd(c *cli) *cobra.Command {
	var flags lotteryFlags
	var number uint64

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show a ticket by number",
		RunE: func(cmd *cobra.Command, args []string) error {
			authority, err := parseKey("authority", flags.authority)
			if err != nil {
				return err
			}

			ticket, err := c.client.GetTicket(cmd.Context(), authority, flags.lotteryId, number)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), newTicketView(ticket))
		},
	}

	flags.register(cmd)
	cmd.Flags().Uint64Var(&number, "number", 0, "ticket number")
	return cmd
}

func ticketListCmd(c *cli) *cobra.Command {
	var flags lotteryFlags
	var buyerFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tickets of a lottery, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			authority, err := parseKey("authority", flags.authority)
			if err != nil {
				return err
			}

			var buyer ed25519.PublicKey
			if buyerFlag != "" {
				buyer, err = parseKey("buyer", buyerFlag)
				if err != nil {
					return err
				}
			}

			list, err := c.client.GetTickets(cmd.Context(), authority, flags.lotteryId, buyer)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), newTicketListView(list))
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&buyerFlag, "buyer", "", "only list tickets owned by this address")
	return cmd
}

func ticketBuyCmd(c *cli) *cobra.Command {
	var flags lotteryFlags
	var buyerFlag string
	var amount int

	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Build a transaction that buys tickets, signed by the new ticket receipts",
		RunE: func(cmd *cobra.Command, args []string) error {
			authority, err := parseKey("authority", flags.authority)
			if err != nil {
				return err
			}
			buyer, err := parseKey("buyer", buyerFlag)
			if err != nil {
				return err
			}

			res, err := c.client.BuyTickets(cmd.Context(), lotto.NewAccount(buyer), authority, flags.lotteryId, amount, true)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), newTransactionView(res.Built))
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&buyerFlag, "buyer", "", "buyer address")
	cmd.Flags().IntVar(&amount, "amount", lotto.MinTicketsPerPurchase, "number of tickets to buy")
	return cmd
}

func ticketClaimCmd(c *cli) *cobra.Command {
	var flags lotteryFlags

	cmd := &cobra.Command{
		Use:   "claim",
		Short: "Build a transaction that claims the prize for the winning ticket's owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			authority, err := parseKey("authority", flags.authority)
			if err != nil {
				return err
			}

			res, err := c.client.ClaimTicket(cmd.Context(), authority, flags.lotteryId, nil, true)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), newTransactionView(res.Built))
		},
	}

	flags.register(cmd)
	return cmd
}
