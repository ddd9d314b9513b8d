package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-review-dashboard/internal/types"
	"github.com/jonathan/resume-review-dashboard/internal/view"
)

var jobCmd = &cobra.Command{
	Use:   "job <job-id>",
	Short: "Show a job with its statistics and candidates",
	Args:  cobra.ExactArgs(1),
	RunE:  runJob,
}

var jobSearch string

func init() {
	jobCmd.Flags().StringVarP(&jobSearch, "search", "s", "", "Only show candidates whose name contains this text")
	rootCmd.AddCommand(jobCmd)
}

func runJob(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	a.shell.Mount(cmd.Context())
	page := a.shell.JobDetailPage()
	defer page.Close()

	page.Load(cmd.Context(), types.ID(args[0]))
	v := page.SetQuery(jobSearch)
	if v.State == view.Unauthenticated {
		return errNotSignedIn
	}

	a.printer.PrintJobDetail(v)
	return nil
}
