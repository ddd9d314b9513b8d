package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-review-dashboard/internal/api"
	"github.com/jonathan/resume-review-dashboard/internal/types"
	"github.com/jonathan/resume-review-dashboard/internal/view"
	"github.com/jonathan/resume-review-dashboard/internal/wizard"
)

// fakeBackend serves canned responses and counts hits per path.
type fakeBackend struct {
	mu        sync.Mutex
	hits      map[string]int
	authed    atomic.Bool
	failStart atomic.Bool
}

func (f *fakeBackend) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	if f.hits == nil {
		f.hits = make(map[string]int)
	}
	f.hits[r.URL.Path]++
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if r.URL.Path != api.PathLogout && !f.authed.Load() {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Not authenticated"}`))
		return
	}

	switch r.URL.Path {
	case api.PathMe:
		_, _ = w.Write([]byte(`{"id":1,"email":"recruiter@example.com","picture":"https://example.com/p.png","created_at":"2024-01-02T03:04:05Z"}`))
	case api.PathLogout:
		f.authed.Store(false)
		_, _ = w.Write([]byte(`{"message":"Logged out"}`))
	case api.PathJobs:
		_, _ = w.Write([]byte(`[
			{"id":7,"name":"Fall 2024 Internship Applicants","folder_name":"Internship Applications","resume_count":3,"status":"processing","created_at":"2024-01-15T10:00:00Z"},
			{"id":8,"name":"Backend Hires","folder_name":"Engineering","resume_count":0,"status":"queued","created_at":"2024-02-01T10:00:00Z"}
		]`))
	case api.PathJobResumes:
		_, _ = w.Write([]byte(`{
			"job_name":"Fall 2024 Internship Applicants","job_date":"2024-01-15T10:00:00Z",
			"stats":{"num_resumes":3,"average_score":85,"high_score":92,"lowest_score":78},
			"resumes":[
				{"id":42,"job_id":7,"candidate_name":"Sarah Chen","file_name":"sarah.pdf","status":"scored","score":92,"gpa":3.8,"num_internships":2},
				{"id":43,"job_id":7,"candidate_name":"Michael Rodriguez","file_name":"mr.pdf","status":"scored","score":78,"gpa":3.4,"num_internships":1},
				{"id":44,"job_id":7,"file_name":"pending.pdf","status":"queued","score":null}
			]}`))
	case api.PathResume:
		_, _ = w.Write([]byte(`{"id":42,"job_id":7,"candidate_name":"Sarah Chen","file_name":"sarah.pdf","status":"scored","score":92,"gpa":3.8,"num_internships":2,"school_year":"Senior"}`))
	case api.PathDriveFiles:
		_, _ = w.Write([]byte(`[{"id":"folder-1","name":"Internship Applications","mimeType":"application/vnd.google-apps.folder"}]`))
	case api.PathStartJob:
		if f.failStart.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"drive unavailable"}`))
			return
		}
		_, _ = w.Write([]byte(`{"message":"Job started"}`))
	default:
		http.NotFound(w, r)
	}
}

type recorder struct {
	mu     sync.Mutex
	routes []string
}

func (r *recorder) Navigate(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.routes...)
}

func newShell(t *testing.T, authed bool) (*Shell, *fakeBackend, *recorder) {
	t.Helper()
	backend := &fakeBackend{}
	backend.authed.Store(authed)
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	client, err := api.New(srv.URL, api.DefaultOptions())
	require.NoError(t, err)
	nav := &recorder{}
	return NewShell(client, nav, nil), backend, nav
}

func TestMount_ProbesOnce(t *testing.T) {
	shell, backend, _ := newShell(t, true)

	first := shell.Mount(context.Background())
	second := shell.Mount(context.Background())

	assert.True(t, first.IsAuthenticated)
	assert.Equal(t, "recruiter@example.com", first.Email)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, backend.count(api.PathMe))
}

// An anonymous visitor on the job list never triggers the jobs request and
// sees an empty list.
func TestJobsPage_AnonymousNeverFetches(t *testing.T) {
	shell, backend, _ := newShell(t, false)

	sess := shell.Mount(context.Background())
	require.False(t, sess.IsAuthenticated)

	page := shell.JobsPage()
	defer page.Close()
	v := page.Load(context.Background())

	assert.Equal(t, 0, backend.count(api.PathJobs))
	assert.Empty(t, v.Jobs)
	assert.Equal(t, view.Unauthenticated, v.State)
}

func TestJobsPage_RefetchesWhenSessionChanges(t *testing.T) {
	shell, backend, _ := newShell(t, false)
	shell.Mount(context.Background())

	page := shell.JobsPage()
	defer page.Close()
	v := page.Load(context.Background())
	require.Equal(t, view.Unauthenticated, v.State)
	require.Equal(t, 0, backend.count(api.PathJobs))

	backend.authed.Store(true)
	require.True(t, shell.Session().Probe(context.Background()).IsAuthenticated)

	require.Eventually(t, func() bool {
		return page.Render().State == view.Populated
	}, 2*time.Second, 5*time.Millisecond)
	assert.Len(t, page.Render().Jobs, 2)
	assert.Equal(t, 1, backend.count(api.PathJobs))

	shell.Logout(context.Background())
	require.Eventually(t, func() bool {
		return page.Render().State == view.Unauthenticated
	}, 2*time.Second, 5*time.Millisecond)
	assert.Empty(t, page.Render().Jobs)
	assert.Equal(t, 1, backend.count(api.PathJobs))
}

func TestJobDetailPage_RefetchesAfterLogin(t *testing.T) {
	shell, backend, _ := newShell(t, false)
	shell.Mount(context.Background())

	page := shell.JobDetailPage()
	defer page.Close()
	require.Equal(t, view.Unauthenticated, page.Load(context.Background(), "7").State)

	backend.authed.Store(true)
	shell.Session().Probe(context.Background())

	require.Eventually(t, func() bool {
		v := page.Render()
		return v.State == view.Populated && v.Status == "processing"
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, backend.count(api.PathJobResumes))
}

func TestPageClose_StopsRefetching(t *testing.T) {
	shell, backend, _ := newShell(t, false)
	shell.Mount(context.Background())

	page := shell.JobsPage()
	page.Load(context.Background())
	page.Close()

	backend.authed.Store(true)
	shell.Session().Probe(context.Background())
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, backend.count(api.PathJobs))
}

func TestJobsPage_PopulatedAndFiltered(t *testing.T) {
	shell, _, _ := newShell(t, true)
	shell.Mount(context.Background())

	page := shell.JobsPage()
	defer page.Close()
	v := page.Load(context.Background())

	require.Equal(t, view.Populated, v.State)
	require.Len(t, v.Jobs, 2)
	assert.Equal(t, "Jan 15, 2024", v.Jobs[0].Created)
	assert.Equal(t, "3", v.Jobs[0].Resumes)

	v = page.SetQuery("engineering")
	require.Len(t, v.Jobs, 1)
	assert.Equal(t, "8", v.Jobs[0].ID)

	v = page.SetQuery("nothing matches")
	assert.Equal(t, view.Empty, v.State)
}

func TestJobDetailPage_LoadsSiblings(t *testing.T) {
	shell, backend, _ := newShell(t, true)
	shell.Mount(context.Background())

	page := shell.JobDetailPage()
	defer page.Close()
	v := page.Load(context.Background(), "7")

	require.Equal(t, view.Populated, v.State)
	assert.Equal(t, "Fall 2024 Internship Applicants", v.Name)
	assert.Equal(t, "Internship Applications", v.Folder)
	assert.Equal(t, "processing", v.Status)
	assert.Equal(t, 3, v.Stats.NumResumes)
	assert.Equal(t, 85.0, v.Stats.AverageScore)
	require.Len(t, v.Resumes, 3)
	assert.Equal(t, view.Placeholder, v.Resumes[2].Score)
	assert.Equal(t, 1, backend.count(api.PathJobs))

	v = page.SetQuery("sarah")
	require.Len(t, v.Resumes, 1)
	assert.Equal(t, view.IndicatorUp, v.Resumes[0].Indicator)
}

func TestJobDetailPage_AnonymousRedirects(t *testing.T) {
	shell, backend, nav := newShell(t, false)
	shell.Mount(context.Background())

	page := shell.JobDetailPage()
	defer page.Close()
	v := page.Load(context.Background(), "7")

	assert.Equal(t, view.Unauthenticated, v.State)
	assert.Equal(t, []string{RouteLanding}, nav.all())
	assert.Equal(t, 0, backend.count(api.PathJobResumes))
}

// Resume 42 is scored 92 with GPA 3.8: the header shows "92", the GPA card
// "3.80" and the excellent label.
func TestResumePage_ScoredResume(t *testing.T) {
	shell, _, _ := newShell(t, true)
	shell.Mount(context.Background())

	page := shell.ResumePage()
	defer page.Close()
	v := page.Load(context.Background(), "42")

	require.Equal(t, view.Populated, v.State)
	assert.Equal(t, "92", v.Resume.Score)
	assert.Equal(t, "3.80", v.Resume.GPA)
	assert.Equal(t, "Excellent candidate – Highly recommended", v.Resume.Label)
	assert.Equal(t, "Sarah Chen", v.Resume.Name)
}

func TestNewJobPage_SubmitRedirectsToList(t *testing.T) {
	shell, backend, nav := newShell(t, true)
	shell.Mount(context.Background())

	page := shell.NewJobPage()
	defer page.Close()
	v := page.Load(context.Background())
	require.Equal(t, view.Populated, v.State)
	require.Len(t, v.Folders, 1)

	w := page.Wizard()
	require.NoError(t, w.SelectFolder(v.Folders[0]))
	require.NoError(t, w.Next())
	require.NoError(t, w.SetName("Fall 2024 Internship Applicants"))
	require.NoError(t, w.Next())

	backend.failStart.Store(true)
	err := w.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, api.StatusCode(err))
	v = page.Render()
	assert.Equal(t, wizard.StepReviewAndSubmit, v.Step)
	assert.Error(t, v.Err)
	assert.Empty(t, nav.all())

	backend.failStart.Store(false)
	require.NoError(t, w.Submit(context.Background()))
	assert.Equal(t, []string{RouteLanding}, nav.all())
	assert.Equal(t, wizard.StepSubmitted, page.Render().Step)
}

func TestLogout_ClearsSessionAndGoesHome(t *testing.T) {
	shell, _, nav := newShell(t, true)
	require.True(t, shell.Mount(context.Background()).IsAuthenticated)

	shell.Logout(context.Background())
	shell.Logout(context.Background())

	assert.False(t, shell.Session().IsAuthenticated())
	assert.Equal(t, types.Session{}, shell.Session().Snapshot())
	assert.Equal(t, []string{RouteLanding, RouteLanding}, nav.all())
}

func TestRoutes(t *testing.T) {
	assert.Equal(t, "/jobs/7", JobRoute("7"))
	assert.Equal(t, "/jobs/7/resumes/42", ResumeRoute("7", "42"))
}
