package view

import (
	"math"
	"strings"

	"github.com/jonathan/resume-review-dashboard/internal/types"
)

// Resume is the display form of one resume. Scoring fields hold the
// placeholder unless the resume is scored.
type Resume struct {
	ID          string
	Name        string
	FileName    string
	Status      string
	Score       string
	GPA         string
	Internships string
	SchoolYear  string
	Label       string
	Indicator   Indicator
	ViewURL     string
}

// NewResume builds the display form of r.
func NewResume(r types.Resume) Resume {
	v := Resume{
		ID:          r.ID.String(),
		Name:        r.DisplayName(),
		FileName:    r.FileName,
		Status:      string(r.Status),
		Score:       Placeholder,
		GPA:         Placeholder,
		Internships: Placeholder,
		SchoolYear:  FormatText(r.SchoolYear),
		Label:       Placeholder,
		ViewURL:     r.ViewURL,
	}
	if r.Status != types.ResumeScored {
		return v
	}
	v.Score = FormatScore(r.Score)
	v.GPA = FormatGPA(r.GPA)
	v.Internships = FormatCount(r.NumInternships)
	if r.Score != nil {
		v.Label = ScoreLabel(*r.Score)
		v.Indicator = ScoreIndicator(*r.Score)
	}
	return v
}

// FilterResumes keeps resumes whose candidate or file name contains query,
// ignoring case. An empty query keeps everything.
func FilterResumes(resumes []types.Resume, query string) []types.Resume {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return resumes
	}
	out := make([]types.Resume, 0, len(resumes))
	for _, r := range resumes {
		if strings.Contains(strings.ToLower(r.DisplayName()), q) ||
			strings.Contains(strings.ToLower(r.FileName), q) {
			out = append(out, r)
		}
	}
	return out
}

// FilterJobs keeps jobs whose name or folder name contains query, ignoring
// case.
func FilterJobs(jobs []types.Job, query string) []types.Job {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return jobs
	}
	out := make([]types.Job, 0, len(jobs))
	for _, j := range jobs {
		if strings.Contains(strings.ToLower(j.Name), q) ||
			strings.Contains(strings.ToLower(j.FolderName), q) {
			out = append(out, j)
		}
	}
	return out
}

// ComputeStats summarises resumes. NumResumes counts every resume; the
// score figures cover scored resumes only, with the average rounded to the
// nearest integer. Scored counts the resumes the figures cover.
func ComputeStats(resumes []types.Resume) types.JobStats {
	stats := types.JobStats{NumResumes: len(resumes)}
	var sum float64
	n := 0
	for i := range resumes {
		r := &resumes[i]
		if !r.HasScore() || math.IsNaN(*r.Score) {
			continue
		}
		s := *r.Score
		if n == 0 || s > stats.HighScore {
			stats.HighScore = s
		}
		if n == 0 || s < stats.LowestScore {
			stats.LowestScore = s
		}
		sum += s
		n++
	}
	stats.Scored = n
	if n > 0 {
		stats.AverageScore = math.Round(sum / float64(n))
	}
	return stats
}
