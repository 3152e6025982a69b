/*
Copyright © 2024 pando
*/
package cmd

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var transferOpt struct {
	TraceID string `json:"trace_id,omitempty"`
	From    string `json:"from"`
	To      string `json:"to"`
	Amount  string `json:"amount"`
}

// transferCmd represents the transfer command
var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "move money between two of your cards",
	RunE: func(cmd *cobra.Command, args []string) error {
		if transferOpt.TraceID == "" {
			transferOpt.TraceID = uuid.NewString()
		}

		var result any
		r := getClient().R().
			SetContext(cmd.Context()).
			SetBody(transferOpt).
			SetResult(&result)
		if err := execute(r, http.MethodPost, "/transfer"); err != nil {
			return err
		}

		return printJson(cmd, result)
	},
}

var transfersCmd = &cobra.Command{
	Use:   "transfers",
	Short: "list the latest transfers",
	RunE: func(cmd *cobra.Command, args []string) error {
		var result any
		r := getClient().R().SetContext(cmd.Context()).SetResult(&result)
		if err := execute(r, http.MethodGet, "/transfers"); err != nil {
			return err
		}

		return printJson(cmd, result)
	},
}

func init() {
	rootCmd.AddCommand(transferCmd)
	rootCmd.AddCommand(transfersCmd)

	transferCmd.Flags().StringVar(&transferOpt.TraceID, "trace", "", "trace id (optional)")
	transferCmd.Flags().StringVar(&transferOpt.From, "from", "", "source card number")
	transferCmd.Flags().StringVar(&transferOpt.To, "to", "", "destination card number")
	transferCmd.Flags().StringVar(&transferOpt.Amount, "amount", "0", "amount in minor units")
	_ = transferCmd.MarkFlagRequired("from")
	_ = transferCmd.MarkFlagRequired("to")
}
