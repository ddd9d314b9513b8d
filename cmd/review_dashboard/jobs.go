package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-review-dashboard/internal/view"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List resume review jobs",
	RunE:  runJobs,
}

var jobsSearch string

func init() {
	jobsCmd.Flags().StringVarP(&jobsSearch, "search", "s", "", "Only show jobs whose name or folder contains this text")
	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	a.shell.Mount(cmd.Context())
	page := a.shell.JobsPage()
	defer page.Close()

	page.Load(cmd.Context())
	v := page.SetQuery(jobsSearch)
	if v.State == view.Unauthenticated {
		return errNotSignedIn
	}

	a.printer.PrintJobs(v)
	return nil
}
