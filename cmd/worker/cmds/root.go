package cmds

import (
	"context"
	"encoding/json"
	"os"

	"github.com/pandodao/card-transfer/core"
	"github.com/pandodao/card-transfer/store/fixture"
	"github.com/pandodao/generic"
	"github.com/spf13/cobra"
)

type Cmd struct {
	Users     core.UserStore
	Cards     core.CardStore
	Transfers core.TransferStore
}

func (c *Cmd) Run(ctx context.Context, args []string) error {
	root := &cobra.Command{
		Use:   "card-transfer",
		Short: "card-transfer maintenance commands",
	}

	root.AddCommand(c.seedCmd())
	root.AddCommand(c.ledgerCmd())
	root.AddCommand(c.cardsCmd())
	root.AddCommand(c.transfersCmd())

	root.SetArgs(args)
	root.SetOut(os.Stdout)

	return root.ExecuteContext(ctx)
}

func (c *Cmd) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "create the reference user and cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fixture.Load(cmd.Context(), c.Users, c.Cards, fixture.Default())
		},
	}
}

func (c *Cmd) ledgerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ledger",
		Short: "print card count and balance total",
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := c.Cards.Sum(cmd.Context())
			if err != nil {
				return err
			}

			return jsonPrint(cmd, ledger)
		},
	}
}

type cardView struct {
	Number  string `json:"number"`
	Balance int64  `json:"balance"`
}

func viewCard(card *core.Card) cardView {
	return cardView{
		Number:  card.Number.String(),
		Balance: card.Balance,
	}
}

func (c *Cmd) cardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cards",
		Short: "list the cards of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := c.Cards.ListOwner(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return jsonPrint(cmd, generic.MapSlice(cards, viewCard))
		},
	}
}

func (c *Cmd) transfersCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "transfers",
		Short: "list the latest transfers of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transfers, err := c.Transfers.ListLogin(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}

			return jsonPrint(cmd, transfers)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "max transfers to list")
	return cmd
}

func jsonPrint(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
