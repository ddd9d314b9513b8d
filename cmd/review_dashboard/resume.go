package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-review-dashboard/internal/types"
	"github.com/jonathan/resume-review-dashboard/internal/view"
)

var resumeCmd = &cobra.Command{
	Use:   "resume <resume-id>",
	Short: "Show one resume's score and details",
	Args:  cobra.ExactArgs(1),
	RunE:  runResume,
}

func init() {
	rootCmd.AddCommand(resumeCmd)
}

func runResume(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	a.shell.Mount(cmd.Context())
	page := a.shell.ResumePage()
	defer page.Close()

	v := page.Load(cmd.Context(), types.ID(args[0]))
	if v.State == view.Unauthenticated {
		return errNotSignedIn
	}

	a.printer.PrintResume(v)
	return nil
}
