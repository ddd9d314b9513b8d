package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-review-dashboard/internal/dashboard"
	"github.com/jonathan/resume-review-dashboard/internal/types"
	"github.com/jonathan/resume-review-dashboard/internal/view"
	"github.com/jonathan/resume-review-dashboard/internal/wizard"
)

var newJobCmd = &cobra.Command{
	Use:   "new-job",
	Short: "Create a resume review job from a Drive folder",
	Long: `Create a review job in three steps: choose a Drive folder, name the job, then review and submit.
Values not given as flags are prompted for.`,
	RunE: runNewJob,
}

var (
	newJobFolder      string
	newJobName        string
	newJobDescription string
	newJobYes         bool
)

func init() {
	newJobCmd.Flags().StringVar(&newJobFolder, "folder", "", "Drive folder ID or name")
	newJobCmd.Flags().StringVar(&newJobName, "name", "", "Job name")
	newJobCmd.Flags().StringVar(&newJobDescription, "description", "", "Optional job description")
	newJobCmd.Flags().BoolVarP(&newJobYes, "yes", "y", false, "Submit without asking for confirmation")
	rootCmd.AddCommand(newJobCmd)
}

func runNewJob(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	p := newPrompter(cmd)

	a.shell.Mount(ctx)
	page := a.shell.NewJobPage()
	defer page.Close()

	v := page.Load(ctx)
	switch v.State {
	case view.Unauthenticated:
		return errNotSignedIn
	case view.Empty:
		return fmt.Errorf("no Drive folders available")
	}
	w := page.Wizard()

	// Step 1
	folder, err := chooseFolder(a, p, v, newJobFolder)
	if err != nil {
		return err
	}
	if err := w.SelectFolder(folder); err != nil {
		return err
	}
	if err := w.Next(); err != nil {
		return err
	}

	// Step 2
	name := newJobName
	if strings.TrimSpace(name) == "" {
		if name, err = p.ask("Job name: "); err != nil {
			return fmt.Errorf("failed to read job name: %w", err)
		}
	}
	desc := newJobDescription
	if desc == "" && newJobName == "" {
		desc, _ = p.ask("Description (optional): ")
	}
	if err := w.SetName(name); err != nil {
		return err
	}
	if err := w.SetDescription(desc); err != nil {
		return err
	}
	if err := w.Next(); err != nil {
		return err
	}

	// Step 3
	a.printer.PrintReview(w.Draft(), nil)
	if !newJobYes && !p.confirm("Create this job?") {
		_, _ = fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	for {
		err := w.Submit(ctx)
		if err == nil {
			break
		}
		a.printer.PrintReview(w.Draft(), w.SubmitError())
		if newJobYes || !p.confirm("Retry?") {
			return fmt.Errorf("failed to create job: %w", err)
		}
	}

	_, _ = fmt.Fprintln(a.out, "Job created. Run `review_dashboard jobs` to follow its progress.")
	return nil
}

// chooseFolder resolves the folder flag by ID or name, or prompts for a
// number from the listing.
func chooseFolder(a *app, p *prompter, v dashboard.NewJobView, want string) (types.DriveFolder, error) {
	folders := v.Folders
	if want != "" {
		for _, f := range folders {
			if f.ID == want || strings.EqualFold(f.Name, want) {
				return f, nil
			}
		}
		return types.DriveFolder{}, &wizard.StepError{
			Step:    wizard.StepSelectFolder,
			Field:   "Folder",
			Message: fmt.Sprintf("no Drive folder matches %q", want),
		}
	}

	a.printer.PrintFolders(v)
	answer, err := p.ask(fmt.Sprintf("Folder [1-%d]: ", len(folders)))
	if err != nil {
		return types.DriveFolder{}, fmt.Errorf("failed to read folder choice: %w", err)
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(folders) {
		return types.DriveFolder{}, &wizard.StepError{
			Step:    wizard.StepSelectFolder,
			Field:   "Folder",
			Message: fmt.Sprintf("%q is not a folder number", answer),
		}
	}
	return folders[n-1], nil
}
