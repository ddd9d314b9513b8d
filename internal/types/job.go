package types

import "encoding/json"

// Job is a batch review task over one drive folder.
type Job struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	FolderName  string    `json:"folder_name"`
	ResumeCount *int      `json:"resume_count"`
	Status      JobStatus `json:"status"`
	// StatusRaw is the status exactly as the backend sent it.
	StatusRaw string    `json:"-"`
	CreatedAt Timestamp `json:"created_at"`
}

// UnmarshalJSON decodes a job, keeping the wire status next to the
// canonical one.
func (j *Job) UnmarshalJSON(data []byte) error {
	type plain Job
	aux := struct {
		*plain
		Status *string `json:"status"`
	}{plain: (*plain)(j)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	j.StatusRaw = ""
	if aux.Status != nil {
		j.StatusRaw = *aux.Status
	}
	j.Status = ParseJobStatus(j.StatusRaw)
	return nil
}

// StatusError reports an unrecognised status, quoting the wire value.
func (j Job) StatusError() error {
	if j.Status.Known() {
		return nil
	}
	return &UnknownStatusError{Entity: "job", ID: j.ID, Value: wireValue(j.StatusRaw, string(j.Status))}
}

func wireValue(raw, canonical string) string {
	if raw != "" {
		return raw
	}
	return canonical
}

// JobStats summarises the resumes of a job. The score figures are only
// meaningful when Scored is positive.
type JobStats struct {
	NumResumes   int
	Scored       int
	AverageScore float64
	HighScore    float64
	LowestScore  float64
}

// JobResumes is the job detail payload: the job's resumes and header
// fields. The backend also sends a stats object, which is ignored; the
// dashboard derives its figures from the resumes it shows.
type JobResumes struct {
	Resumes []Resume  `json:"resumes"`
	JobName string    `json:"job_name"`
	JobDate Timestamp `json:"job_date"`
}

// DriveFolder is a folder offered by the drive listing endpoint.
type DriveFolder struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FileCount *int   `json:"file_count"`
}

// CreateJobRequest is the body of the job creation call.
type CreateJobRequest struct {
	FolderID    string `json:"folder_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}
