/*
Copyright © 2024 pando
*/
package cmd

import (
	"net/http"

	"github.com/spf13/cobra"
)

// cardsCmd lists the session's cards, or one card when an index is given
var cardsCmd = &cobra.Command{
	Use:   "cards [index]",
	Short: "show cards and balances",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := "/cards"
		if len(args) == 1 {
			url += "/" + args[0]
		}

		var result any
		r := getClient().R().SetContext(cmd.Context()).SetResult(&result)
		if err := execute(r, http.MethodGet, url); err != nil {
			return err
		}

		return printJson(cmd, result)
	},
}

func init() {
	rootCmd.AddCommand(cardsCmd)
}
