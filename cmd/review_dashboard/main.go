// Package main provides the entry point for the resume review dashboard CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "review_dashboard",
	Short:         "Resume Review Dashboard client",
	Long:          "Review Dashboard lists resume review jobs, shows scored candidates and starts new jobs over Google Drive folders, talking to the review backend with your session cookie.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
