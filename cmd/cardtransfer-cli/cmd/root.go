/*
Copyright © 2024 pando
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cardtransfer-cli",
	Short: "http client for the card-transfer service",
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("endpoint", "l", "http://localhost:8080", "server endpoint")
	rootCmd.PersistentFlags().StringP("token", "t", "", "session token")
	_ = viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))

	viper.SetEnvPrefix("cardtransfer")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

type apiError struct {
	Kind    string `json:"error"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}

	return e.Kind
}

func getClient() *resty.Client {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(viper.GetString("endpoint"), "/") + "/api").
		SetError(&apiError{})

	if token := viper.GetString("token"); token != "" {
		client.SetAuthToken(token)
	}

	return client
}

func execute(r *resty.Request, method, url string) error {
	resp, err := r.Execute(method, url)
	if err != nil {
		return err
	}

	if resp.IsError() {
		if e, ok := resp.Error().(*apiError); ok && e.Kind != "" {
			return e
		}

		return fmt.Errorf("%s %s: %s", method, url, resp.Status())
	}

	return nil
}

func printJson(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	cmd.Println(string(b))
	return nil
}
