/*
Copyright © 2024 pando
*/
package cmd

import (
	"bufio"
	"errors"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
)

var loginOpt struct {
	password string
	code     string
}

type pendingView struct {
	PendingToken string `json:"pending_token"`
	ExpiresAt    string `json:"expires_at"`
}

type sessionView struct {
	SessionToken string `json:"session_token"`
	Login        string `json:"login"`
	ExpiresAt    string `json:"expires_at"`
}

// loginCmd runs both login steps and prints the session token
var loginCmd = &cobra.Command{
	Use:   "login <login>",
	Short: "log in with password and one-time code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := getClient()

		var pending pendingView
		if err := execute(client.R().
			SetContext(cmd.Context()).
			SetBody(map[string]string{
				"login":    args[0],
				"password": loginOpt.password,
			}).
			SetResult(&pending), http.MethodPost, "/login"); err != nil {
			return err
		}

		code := loginOpt.code
		if code == "" {
			cmd.Print("code: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return errors.New("no code entered")
			}

			code = strings.TrimSpace(line)
		}

		var session sessionView
		if err := execute(client.R().
			SetContext(cmd.Context()).
			SetBody(map[string]string{
				"pending_token": pending.PendingToken,
				"code":          code,
			}).
			SetResult(&session), http.MethodPost, "/verify"); err != nil {
			return err
		}

		return printJson(cmd, session)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "close the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(getClient().R().SetContext(cmd.Context()), http.MethodPost, "/logout")
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)

	loginCmd.Flags().StringVarP(&loginOpt.password, "password", "p", "", "password")
	loginCmd.Flags().StringVar(&loginOpt.code, "code", "", "one-time code (asked for when empty)")
	_ = loginCmd.MarkFlagRequired("password")
}
