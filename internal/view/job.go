package view

import (
	"github.com/jonathan/resume-review-dashboard/internal/types"
)

// Job is the display form of one job row.
type Job struct {
	ID      string
	Name    string
	Folder  string
	Resumes string
	Status  string
	Created string
}

// NewJob builds the display form of j.
func NewJob(j types.Job) Job {
	folder := j.FolderName
	if folder == "" {
		folder = Placeholder
	}
	return Job{
		ID:      j.ID.String(),
		Name:    j.Name,
		Folder:  folder,
		Resumes: FormatCount(j.ResumeCount),
		Status:  string(j.Status),
		Created: FormatDate(j.CreatedAt),
	}
}
