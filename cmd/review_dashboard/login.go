package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-review-dashboard/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with the session cookie issued by the backend",
	Long: `Sign in to the review backend. Sign-in itself happens in a browser through Google;
afterwards copy the value of the access_token cookie and pass it with --token or paste it when prompted.
The token is checked against the backend and stored for later commands.`,
	RunE: runLogin,
}

var loginToken string

func init() {
	loginCmd.Flags().StringVar(&loginToken, "token", "", "Value of the access_token cookie")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	token := strings.TrimSpace(loginToken)
	if token == "" {
		_, _ = fmt.Fprintf(a.out, "Open this URL in a browser and sign in:\n\n  %s\n\n", a.shell.LoginURL())
		token, err = newPrompter(cmd).ask("Then paste the value of the access_token cookie: ")
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
	}
	if token == "" {
		return fmt.Errorf("no session token provided")
	}

	info, err := session.InspectToken(token)
	if err != nil {
		return fmt.Errorf("invalid session token: %w", err)
	}
	if info.Expired(time.Now()) {
		return fmt.Errorf("session token expired at %s; sign in again", info.ExpiresAt.Format(time.RFC1123))
	}

	a.client.SetSessionToken(token)
	sess := a.shell.Mount(cmd.Context())
	if !sess.IsAuthenticated {
		return fmt.Errorf("backend did not accept the session token")
	}

	if err := writeToken(a.tokenPath, token); err != nil {
		return err
	}

	a.printer.PrintSession(sess)
	_, _ = fmt.Fprintf(a.out, "Session saved to %s\n", a.tokenPath)
	return nil
}
