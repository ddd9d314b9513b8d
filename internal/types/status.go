package types

import (
	"encoding/json"
	"strings"
)

// JobStatus is the canonical lifecycle status of a review job.
type JobStatus string

// Job statuses. JobUnknown marks a wire value the client does not recognise.
const (
	JobQueued     JobStatus = "queued"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
	JobUnknown    JobStatus = "unknown"
)

// ParseJobStatus maps a wire value onto the canonical job status.
// "pending" is an older spelling of processing.
func ParseJobStatus(s string) JobStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "queued":
		return JobQueued
	case "processing", "pending":
		return JobProcessing
	case "completed":
		return JobCompleted
	case "failed":
		return JobFailed
	default:
		return JobUnknown
	}
}

// UnmarshalJSON normalises the wire value through ParseJobStatus.
func (s *JobStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseJobStatus(raw)
	return nil
}

// rank orders statuses along queued -> processing -> {completed, failed}.
// Unknown ranks below everything.
func (s JobStatus) rank() int {
	switch s {
	case JobQueued:
		return 0
	case JobProcessing:
		return 1
	case JobCompleted, JobFailed:
		return 2
	default:
		return -1
	}
}

// Terminal reports whether no further transition is expected.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

// Known reports whether s is one of the canonical statuses.
func (s JobStatus) Known() bool {
	return s.rank() >= 0
}

// ResumeStatus is the canonical scoring status of a resume.
type ResumeStatus string

// Resume statuses.
const (
	ResumePending ResumeStatus = "pending"
	ResumeScored  ResumeStatus = "scored"
	ResumeFailed  ResumeStatus = "failed"
	ResumeUnknown ResumeStatus = "unknown"
)

// ParseResumeStatus maps a wire value onto the canonical resume status.
// The backend has used "completed" and "processed" for scored resumes.
func ParseResumeStatus(s string) ResumeStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "queued", "processing":
		return ResumePending
	case "scored", "completed", "processed":
		return ResumeScored
	case "failed":
		return ResumeFailed
	default:
		return ResumeUnknown
	}
}

// UnmarshalJSON normalises the wire value through ParseResumeStatus.
func (s *ResumeStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseResumeStatus(raw)
	return nil
}

func (s ResumeStatus) rank() int {
	switch s {
	case ResumePending:
		return 0
	case ResumeScored, ResumeFailed:
		return 1
	default:
		return -1
	}
}

// Terminal reports whether scoring has finished one way or the other.
func (s ResumeStatus) Terminal() bool {
	return s == ResumeScored || s == ResumeFailed
}

// Known reports whether s is one of the canonical statuses.
func (s ResumeStatus) Known() bool {
	return s.rank() >= 0
}

// CheckJobTransition reports whether moving from prev to next is allowed.
// Staying put is always fine; moving backwards or between terminal states
// is a StatusRegressionError; an unknown next status is an UnknownStatusError.
func CheckJobTransition(id ID, prev, next JobStatus) error {
	if !next.Known() {
		return &UnknownStatusError{Entity: "job", ID: id, Value: string(next)}
	}
	if prev == next || !prev.Known() {
		return nil
	}
	if next.rank() <= prev.rank() {
		return &StatusRegressionError{Entity: "job", ID: id, From: string(prev), To: string(next)}
	}
	return nil
}

// CheckResumeTransition is CheckJobTransition for resumes.
func CheckResumeTransition(id ID, prev, next ResumeStatus) error {
	if !next.Known() {
		return &UnknownStatusError{Entity: "resume", ID: id, Value: string(next)}
	}
	if prev == next || !prev.Known() {
		return nil
	}
	if next.rank() <= prev.rank() {
		return &StatusRegressionError{Entity: "resume", ID: id, From: string(prev), To: string(next)}
	}
	return nil
}
