//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResume_UnmarshalScored(t *testing.T) {
	body := `{
		"id": 42, "job_id": 3, "candidate_name": "Sarah Johnson",
		"file_name": "sarah_johnson_resume.pdf", "status": "scored",
		"score": 92, "gpa": 3.8, "num_internships": 2, "school_year": "Senior",
		"preview_url": "https://drive.example.com/p/42", "text_url": "", "view_url": "",
		"created_at": "2024-01-15T00:00:00Z"
	}`

	var r Resume
	require.NoError(t, json.Unmarshal([]byte(body), &r))

	assert.Equal(t, ID("42"), r.ID)
	assert.Equal(t, ID("3"), r.JobID)
	assert.Equal(t, ResumeScored, r.Status)
	require.NotNil(t, r.Score)
	assert.InDelta(t, 92.0, *r.Score, 0.001)
	require.NotNil(t, r.GPA)
	assert.InDelta(t, 3.8, *r.GPA, 0.001)
	assert.True(t, r.HasScore())
	assert.Equal(t, "Sarah Johnson", r.DisplayName())
}

func TestResume_Normalize(t *testing.T) {
	score := 0.0
	gpa := 0.0
	internships := 0

	for _, status := range []ResumeStatus{ResumePending, ResumeFailed, ResumeUnknown} {
		r := Resume{Status: status, Score: &score, GPA: &gpa, NumInternships: &internships}
		r.Normalize()
		assert.Nil(t, r.Score, "status %s", status)
		assert.Nil(t, r.GPA, "status %s", status)
		assert.Nil(t, r.NumInternships, "status %s", status)
		assert.False(t, r.HasScore())
	}

	r := Resume{Status: ResumeScored, Score: &score}
	r.Normalize()
	assert.NotNil(t, r.Score)
}

func TestResume_DisplayName(t *testing.T) {
	empty := ""
	r := Resume{FileName: "cv.pdf"}
	assert.Equal(t, "cv.pdf", r.DisplayName())

	r.CandidateName = &empty
	assert.Equal(t, "cv.pdf", r.DisplayName())
}
