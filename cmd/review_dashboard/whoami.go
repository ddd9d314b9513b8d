package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-review-dashboard/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	sess := a.shell.Mount(cmd.Context())
	a.printer.PrintSession(sess)

	if tok := a.client.SessionToken(); tok != "" {
		if info, err := session.InspectToken(tok); err == nil && !info.ExpiresAt.IsZero() {
			_, _ = fmt.Fprintf(a.out, "Session expires %s\n", info.ExpiresAt.Local().Format(time.RFC1123))
		}
	}
	if !sess.IsAuthenticated {
		return errNotSignedIn
	}
	return nil
}
