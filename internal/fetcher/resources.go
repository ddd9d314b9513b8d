package fetcher

import (
	"context"

	"github.com/jonathan/resume-review-dashboard/internal/types"
)

// Backend is the read side of the review backend.
type Backend interface {
	Jobs(ctx context.Context) ([]types.Job, error)
	JobResumes(ctx context.Context, jobID types.ID) (*types.JobResumes, error)
	Resume(ctx context.Context, resumeID types.ID) (*types.Resume, error)
	DriveFolders(ctx context.Context) ([]types.DriveFolder, error)
}

// NoKey keys fetchers whose resource has no route parameter.
type NoKey struct{}

// JobsFetcher loads the job list.
type JobsFetcher = Fetcher[NoKey, []types.Job]

// JobResumesFetcher loads a job's resumes and stats.
type JobResumesFetcher = Fetcher[types.ID, *types.JobResumes]

// ResumeFetcher loads one resume.
type ResumeFetcher = Fetcher[types.ID, *types.Resume]

// DriveFoldersFetcher loads the folders offered for a new job.
type DriveFoldersFetcher = Fetcher[NoKey, []types.DriveFolder]

// NewJobsFetcher creates the job list fetcher.
func NewJobsFetcher(gate Gate, b Backend, opts Options) *JobsFetcher {
	if opts.Name == "" {
		opts.Name = "jobs"
	}
	return New(gate, func(ctx context.Context, _ NoKey) ([]types.Job, error) {
		return b.Jobs(ctx)
	}, opts)
}

// NewJobResumesFetcher creates the job detail fetcher.
func NewJobResumesFetcher(gate Gate, b Backend, opts Options) *JobResumesFetcher {
	if opts.Name == "" {
		opts.Name = "job-resumes"
	}
	return New(gate, b.JobResumes, opts)
}

// NewResumeFetcher creates the resume detail fetcher.
func NewResumeFetcher(gate Gate, b Backend, opts Options) *ResumeFetcher {
	if opts.Name == "" {
		opts.Name = "resume"
	}
	return New(gate, b.Resume, opts)
}

// NewDriveFoldersFetcher creates the drive folder fetcher.
func NewDriveFoldersFetcher(gate Gate, b Backend, opts Options) *DriveFoldersFetcher {
	if opts.Name == "" {
		opts.Name = "drive-folders"
	}
	return New(gate, func(ctx context.Context, _ NoKey) ([]types.DriveFolder, error) {
		return b.DriveFolders(ctx)
	}, opts)
}
