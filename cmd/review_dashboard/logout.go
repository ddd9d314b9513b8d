package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and forget the stored token",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	// The backend call may fail; the local session is cleared regardless.
	a.shell.Logout(cmd.Context())
	if err := removeToken(a.tokenPath); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(a.out, "Signed out")
	return nil
}
