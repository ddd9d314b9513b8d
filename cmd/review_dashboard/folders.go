package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-review-dashboard/internal/view"
)

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "List the Google Drive folders a job can be created from",
	RunE:  runFolders,
}

func init() {
	rootCmd.AddCommand(foldersCmd)
}

func runFolders(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	a.shell.Mount(cmd.Context())
	page := a.shell.NewJobPage()
	defer page.Close()

	v := page.Load(cmd.Context())
	if v.State == view.Unauthenticated {
		return errNotSignedIn
	}

	a.printer.PrintFolders(v)
	return nil
}
