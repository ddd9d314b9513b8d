// Package poll watches in-progress jobs until they reach a terminal status.
package poll

import (
	"errors"
	"sync"

	"github.com/jonathan/resume-review-dashboard/internal/types"
)

// RegressionTracker remembers the last known status of every job and resume
// it has seen and reports observations that move a status backwards.
type RegressionTracker struct {
	mu      sync.Mutex
	jobs    map[types.ID]types.JobStatus
	resumes map[types.ID]types.ResumeStatus
}

// NewRegressionTracker creates an empty tracker.
func NewRegressionTracker() *RegressionTracker {
	return &RegressionTracker{
		jobs:    make(map[types.ID]types.JobStatus),
		resumes: make(map[types.ID]types.ResumeStatus),
	}
}

// ObserveJob records a job status. It returns *types.StatusRegressionError
// when the status moved backwards and *types.UnknownStatusError for an
// unrecognised status; neither replaces the last known status.
func (t *RegressionTracker) ObserveJob(id types.ID, status types.JobStatus) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev, seen := t.jobs[id]
	if !seen {
		prev = types.JobUnknown
	}
	if err := types.CheckJobTransition(id, prev, status); err != nil {
		return err
	}
	t.jobs[id] = status
	return nil
}

// ObserveResume records a resume status with the same rules as ObserveJob.
func (t *RegressionTracker) ObserveResume(id types.ID, status types.ResumeStatus) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev, seen := t.resumes[id]
	if !seen {
		prev = types.ResumeUnknown
	}
	if err := types.CheckResumeTransition(id, prev, status); err != nil {
		return err
	}
	t.resumes[id] = status
	return nil
}

// ObserveJobs records every job of a listing and returns the first anomaly.
// Unknown statuses are reported with the value the backend sent.
func (t *RegressionTracker) ObserveJobs(jobs []types.Job) error {
	var first error
	for _, j := range jobs {
		err := withWireStatus(t.ObserveJob(j.ID, j.Status), j.StatusError())
		if err != nil && first == nil {
			first = err
		}
	}
	return first
}

// ObserveResumes records every resume of a listing and returns the first
// anomaly.
func (t *RegressionTracker) ObserveResumes(resumes []types.Resume) error {
	var first error
	for i := range resumes {
		r := &resumes[i]
		err := withWireStatus(t.ObserveResume(r.ID, r.Status), r.StatusError())
		if err != nil && first == nil {
			first = err
		}
	}
	return first
}

// withWireStatus swaps an unknown-status error for the entity's own, which
// quotes the raw wire value.
func withWireStatus(err, entityErr error) error {
	var unknown *types.UnknownStatusError
	if entityErr != nil && errors.As(err, &unknown) {
		return entityErr
	}
	return err
}
