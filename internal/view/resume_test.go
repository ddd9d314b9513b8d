package view

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-review-dashboard/internal/types"
)

func TestNewResume_Scored(t *testing.T) {
	var r types.Resume
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 42, "job_id": 7, "candidate_name": "Sarah Chen", "file_name": "sarah.pdf",
		"status": "scored", "score": 92, "gpa": 3.8, "num_internships": 2, "school_year": "Senior"
	}`), &r))
	r.Normalize()

	v := NewResume(r)
	assert.Equal(t, "42", v.ID)
	assert.Equal(t, "92", v.Score)
	assert.Equal(t, "3.80", v.GPA)
	assert.Equal(t, "2", v.Internships)
	assert.Equal(t, "Senior", v.SchoolYear)
	assert.Equal(t, LabelExcellent, v.Label)
	assert.Equal(t, IndicatorUp, v.Indicator)
}

func TestNewResume_UnscoredShowsPlaceholders(t *testing.T) {
	zero := 0.0
	for _, status := range []types.ResumeStatus{types.ResumePending, types.ResumeFailed, types.ResumeUnknown} {
		t.Run(string(status), func(t *testing.T) {
			// Numbers present on the wire must still not be displayed.
			v := NewResume(types.Resume{ID: "1", FileName: "a.pdf", Status: status, Score: &zero, GPA: &zero})
			assert.Equal(t, Placeholder, v.Score)
			assert.Equal(t, Placeholder, v.GPA)
			assert.Equal(t, Placeholder, v.Internships)
			assert.Equal(t, Placeholder, v.Label)
			assert.NotEqual(t, "0", v.Score)
			assert.Equal(t, "a.pdf", v.Name)
		})
	}
}

func resumes() []types.Resume {
	return []types.Resume{
		{ID: "1", CandidateName: ptr("Sarah Chen"), FileName: "sarah.pdf", Status: types.ResumeScored, Score: ptr(92.0)},
		{ID: "2", CandidateName: ptr("Michael Rodriguez"), FileName: "mr.pdf", Status: types.ResumeScored, Score: ptr(78.0)},
		{ID: "3", FileName: "unknown_candidate.pdf", Status: types.ResumePending},
		{ID: "4", CandidateName: ptr("Emily Watson"), FileName: "ew.pdf", Status: types.ResumeScored, Score: ptr(85.0)},
	}
}

func TestFilterResumes(t *testing.T) {
	all := resumes()

	assert.Len(t, FilterResumes(all, ""), 4)
	got := FilterResumes(all, "  sARAH ")
	require.Len(t, got, 1)
	assert.Equal(t, types.ID("1"), got[0].ID)

	got = FilterResumes(all, "unknown_")
	require.Len(t, got, 1)
	assert.Equal(t, types.ID("3"), got[0].ID)

	none := FilterResumes(all, "zzz")
	assert.Empty(t, none)
	assert.Equal(t, Empty, ListState(true, false, len(none)))
}

func TestFilterJobs(t *testing.T) {
	jobs := []types.Job{
		{ID: "1", Name: "Fall Interns", FolderName: "Internship Applications"},
		{ID: "2", Name: "Backend Hires", FolderName: "Engineering"},
	}
	assert.Len(t, FilterJobs(jobs, "intern"), 1)
	assert.Len(t, FilterJobs(jobs, "ENGINEERING"), 1)
	assert.Len(t, FilterJobs(jobs, ""), 2)
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(resumes())
	assert.Equal(t, 4, stats.NumResumes)
	assert.Equal(t, 3, stats.Scored)
	assert.Equal(t, 85.0, stats.AverageScore)
	assert.Equal(t, 92.0, stats.HighScore)
	assert.Equal(t, 78.0, stats.LowestScore)

	empty := ComputeStats([]types.Resume{{ID: "1", Status: types.ResumePending}})
	assert.Equal(t, 1, empty.NumResumes)
	assert.Zero(t, empty.Scored)
	assert.Zero(t, empty.AverageScore)
	assert.Zero(t, empty.HighScore)
}

func TestComputeStats_ZeroScoreCounts(t *testing.T) {
	zero := 0.0
	stats := ComputeStats([]types.Resume{
		{ID: "1", Status: types.ResumeScored, Score: &zero},
		{ID: "2", Status: types.ResumePending},
	})
	assert.Equal(t, 2, stats.NumResumes)
	assert.Equal(t, 1, stats.Scored)
	assert.Zero(t, stats.AverageScore)
	assert.Zero(t, stats.HighScore)
	assert.Zero(t, stats.LowestScore)
}

func TestNewJob(t *testing.T) {
	v := NewJob(types.Job{ID: "9", Name: "Fall", Status: types.JobProcessing})
	assert.Equal(t, "9", v.ID)
	assert.Equal(t, Placeholder, v.Folder)
	assert.Equal(t, Placeholder, v.Resumes)
	assert.Equal(t, Placeholder, v.Created)
	assert.Equal(t, "processing", v.Status)
}
