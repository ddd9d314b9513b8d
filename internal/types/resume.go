package types

import "encoding/json"

// Resume is one candidate file within a job and its scoring outcome.
// Score, GPA and NumInternships are only meaningful when Status is
// ResumeScored; Normalize enforces that.
type Resume struct {
	ID             ID           `json:"id"`
	JobID          ID           `json:"job_id"`
	CandidateName  *string      `json:"candidate_name"`
	FileName       string       `json:"file_name"`
	Status         ResumeStatus `json:"status"`
	StatusRaw      string       `json:"-"`
	Score          *float64     `json:"score"`
	GPA            *float64     `json:"gpa"`
	NumInternships *int         `json:"num_internships"`
	SchoolYear     *string      `json:"school_year"`
	PreviewURL     string       `json:"preview_url"`
	TextURL        string       `json:"text_url"`
	ViewURL        string       `json:"view_url"`
	CreatedAt      Timestamp    `json:"created_at"`
}

// UnmarshalJSON decodes a resume, keeping the wire status in StatusRaw.
func (r *Resume) UnmarshalJSON(data []byte) error {
	type plain Resume
	aux := struct {
		*plain
		Status *string `json:"status"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.StatusRaw = ""
	if aux.Status != nil {
		r.StatusRaw = *aux.Status
	}
	r.Status = ParseResumeStatus(r.StatusRaw)
	return nil
}

// StatusError reports an unrecognised status, quoting the wire value.
func (r *Resume) StatusError() error {
	if r.Status.Known() {
		return nil
	}
	return &UnknownStatusError{Entity: "resume", ID: r.ID, Value: wireValue(r.StatusRaw, string(r.Status))}
}

// Normalize clears the scoring fields of a resume that is not scored.
func (r *Resume) Normalize() {
	if r.Status == ResumeScored {
		return
	}
	r.Score = nil
	r.GPA = nil
	r.NumInternships = nil
}

// HasScore reports whether the scoring fields may be displayed.
func (r *Resume) HasScore() bool {
	return r.Status == ResumeScored && r.Score != nil
}

// DisplayName is the candidate name, falling back to the file name.
func (r *Resume) DisplayName() string {
	if r.CandidateName != nil && *r.CandidateName != "" {
		return *r.CandidateName
	}
	return r.FileName
}
