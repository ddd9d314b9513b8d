// Package observability renders dashboard pages as boxed terminal output.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-review-dashboard/internal/dashboard"
	"github.com/jonathan/resume-review-dashboard/internal/types"
	"github.com/jonathan/resume-review-dashboard/internal/view"
	"github.com/jonathan/resume-review-dashboard/internal/wizard"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow caps list boxes unless the printer is verbose
	maxItemsToShow = 10
)

// Printer writes pages to a terminal.
type Printer struct {
	out     io.Writer
	verbose bool
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// SetVerbose lifts the list length cap.
func (p *Printer) SetVerbose(v bool) {
	p.verbose = v
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// printNotice prints a one-line box for non-populated states.
func (p *Printer) printNotice(title, msg string) {
	p.printBox(title, msg)
}

func (p *Printer) limit(n int) int {
	if p.verbose {
		return n
	}
	return min(n, maxItemsToShow)
}

func stateNotice(s view.RenderState, empty string) (string, bool) {
	switch s {
	case view.Loading:
		return "Loading...", true
	case view.Unauthenticated:
		return "Not signed in. Run `review_dashboard login` first.", true
	case view.Empty:
		return empty, true
	default:
		return "", false
	}
}

// PrintSession outputs the signed-in account.
func (p *Printer) PrintSession(s types.Session) {
	if !s.IsAuthenticated {
		p.printNotice("SESSION", "Not signed in")
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("User ID:  %s\n", s.UserID))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", s.Email))
	if !s.CreatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Since:    %s\n", s.CreatedAt.Format("Jan 2, 2006")))
	}
	p.printBox("SESSION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobs outputs the job list.
func (p *Printer) PrintJobs(v dashboard.JobsView) {
	title := "JOBS"
	if v.Query != "" {
		title = fmt.Sprintf("JOBS matching %q", v.Query)
	}
	if msg, ok := stateNotice(v.State, "No jobs found"); ok {
		p.printNotice(title, msg)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-6s %-26s %-18s %-7s %s\n", "ID", "NAME", "FOLDER", "FILES", "STATUS"))
	count := p.limit(len(v.Jobs))
	for i := 0; i < count; i++ {
		j := v.Jobs[i]
		sb.WriteString(fmt.Sprintf("%-6s %-26s %-18s %-7s %s\n",
			truncate(j.ID, 6), truncate(j.Name, 26), truncate(j.Folder, 18), j.Resumes, j.Status))
	}
	if len(v.Jobs) > count {
		sb.WriteString(fmt.Sprintf("... and %d more jobs\n", len(v.Jobs)-count))
	}
	if v.Anomaly != nil {
		sb.WriteString(fmt.Sprintf("\n⚠ %v\n", v.Anomaly))
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobDetail outputs one job with its statistics and candidates.
func (p *Printer) PrintJobDetail(v dashboard.JobDetailView) {
	if v.State == view.Loading || v.State == view.Unauthenticated {
		msg, _ := stateNotice(v.State, "")
		p.printNotice("JOB", msg)
		return
	}
	if v.Name == view.Placeholder && len(v.Resumes) == 0 {
		p.printNotice("JOB", fmt.Sprintf("Job %s not found", v.JobID))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Folder:   %s\n", v.Folder))
	sb.WriteString(fmt.Sprintf("Created:  %s\n", v.Date))
	sb.WriteString(fmt.Sprintf("Status:   %s\n", v.Status))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Resumes: %d   Average: %s   Top: %s   Lowest: %s\n",
		v.Stats.NumResumes, statScore(v.Stats, v.Stats.AverageScore),
		statScore(v.Stats, v.Stats.HighScore), statScore(v.Stats, v.Stats.LowestScore)))
	sb.WriteString("\n")

	if len(v.Resumes) == 0 {
		if v.Query != "" {
			sb.WriteString(fmt.Sprintf("No candidates found matching %q\n", v.Query))
		} else {
			sb.WriteString("No candidates yet\n")
		}
	} else {
		sb.WriteString(fmt.Sprintf("%-6s %-24s %-7s %-5s %s\n", "ID", "CANDIDATE", "SCORE", "GPA", "STATUS"))
		count := p.limit(len(v.Resumes))
		for i := 0; i < count; i++ {
			r := v.Resumes[i]
			score := r.Score
			if r.Indicator != "" {
				score = fmt.Sprintf("%s %s", r.Score, r.Indicator)
			}
			sb.WriteString(fmt.Sprintf("%-6s %-24s %-7s %-5s %s\n",
				truncate(r.ID, 6), truncate(r.Name, 24), score, r.GPA, r.Status))
		}
		if len(v.Resumes) > count {
			sb.WriteString(fmt.Sprintf("... and %d more candidates\n", len(v.Resumes)-count))
		}
	}
	if v.Anomaly != nil {
		sb.WriteString(fmt.Sprintf("\n⚠ %v\n", v.Anomaly))
	}
	p.printBox(strings.ToUpper(v.Name), strings.TrimSuffix(sb.String(), "\n"))
}

// statScore hides score figures when nothing has been scored yet.
func statScore(stats types.JobStats, v float64) string {
	if stats.Scored == 0 {
		return view.Placeholder
	}
	return view.FormatScore(&v)
}

// PrintResume outputs one resume's scoring outcome.
func (p *Printer) PrintResume(v dashboard.ResumeView) {
	if msg, ok := stateNotice(v.State, "Resume not found"); ok {
		p.printNotice("RESUME", msg)
		return
	}

	r := v.Resume
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:         %s\n", r.FileName))
	sb.WriteString(fmt.Sprintf("Status:       %s\n", r.Status))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Score:        %s\n", r.Score))
	sb.WriteString(fmt.Sprintf("              %s\n", r.Label))
	sb.WriteString(fmt.Sprintf("GPA:          %s\n", r.GPA))
	sb.WriteString(fmt.Sprintf("Internships:  %s\n", r.Internships))
	sb.WriteString(fmt.Sprintf("School year:  %s\n", r.SchoolYear))
	if r.ViewURL != "" {
		sb.WriteString(fmt.Sprintf("\nView: %s\n", r.ViewURL))
	}
	if v.Anomaly != nil {
		sb.WriteString(fmt.Sprintf("\n⚠ %v\n", v.Anomaly))
	}
	p.printBox(strings.ToUpper(r.Name), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFolders outputs the drive folders offered for a new job.
func (p *Printer) PrintFolders(v dashboard.NewJobView) {
	if msg, ok := stateNotice(v.State, "No folders available"); ok {
		p.printNotice("DRIVE FOLDERS", msg)
		return
	}

	var sb strings.Builder
	for i, f := range v.Folders {
		sb.WriteString(fmt.Sprintf("%2d. %s", i+1, f.Name))
		if f.FileCount != nil {
			sb.WriteString(fmt.Sprintf(" (%d files)", *f.FileCount))
		}
		sb.WriteString("\n")
	}
	p.printBox("DRIVE FOLDERS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReview outputs the wizard's review step.
func (p *Printer) PrintReview(d wizard.Draft, submitErr error) {
	folder := view.Placeholder
	if d.Folder != nil {
		folder = d.Folder.Name
	}
	desc := strings.TrimSpace(d.Description)
	if desc == "" {
		desc = view.Placeholder
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Folder:       %s\n", folder))
	sb.WriteString(fmt.Sprintf("Name:         %s\n", strings.TrimSpace(d.Name)))
	sb.WriteString(fmt.Sprintf("Description:  %s", desc))
	if submitErr != nil {
		sb.WriteString(fmt.Sprintf("\n\n⚠ %v", submitErr))
	}
	p.printBox("REVIEW NEW JOB", sb.String())
}

// PrintJobStatus outputs a single status line for a watched job.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintJobStatus(j types.Job) {
	fmt.Fprintf(p.out, "job %s (%s): %s\n", j.ID, j.Name, j.Status)
}
