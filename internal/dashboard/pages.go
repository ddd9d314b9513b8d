package dashboard

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-review-dashboard/internal/fetcher"
	"github.com/jonathan/resume-review-dashboard/internal/poll"
	"github.com/jonathan/resume-review-dashboard/internal/types"
	"github.com/jonathan/resume-review-dashboard/internal/view"
	"github.com/jonathan/resume-review-dashboard/internal/wizard"
)

// JobsView is the rendered job list.
type JobsView struct {
	State   view.RenderState
	Query   string
	Jobs    []view.Job
	Raw     []types.Job
	Anomaly error
}

// JobsPage is the job list, the landing route.
type JobsPage struct {
	shell   *Shell
	jobs    *fetcher.JobsFetcher
	tracker *poll.RegressionTracker
	mount   *mount

	mu      sync.Mutex
	query   string
	anomaly error
}

// JobsPage creates the job list page. The list is refetched whenever the
// session is gained or lost.
func (s *Shell) JobsPage() *JobsPage {
	p := &JobsPage{
		shell:   s,
		jobs:    fetcher.NewJobsFetcher(s.session, s.backend, s.fetchOptions(false)),
		tracker: poll.NewRegressionTracker(),
	}
	p.jobs.OnChange(p.observe)
	p.mount = s.watch(p.jobs)
	return p
}

func (p *JobsPage) observe(st fetcher.State[fetcher.NoKey, []types.Job]) {
	if st.IsLoading || st.Err != nil {
		return
	}
	anomaly := p.tracker.ObserveJobs(st.Data)
	p.mu.Lock()
	p.anomaly = anomaly
	p.mu.Unlock()
}

// Load fetches the job list.
func (p *JobsPage) Load(ctx context.Context) JobsView {
	p.jobs.Load(ctx, fetcher.NoKey{})
	return p.Render()
}

// SetQuery changes the local search filter.
func (p *JobsPage) SetQuery(q string) JobsView {
	p.mu.Lock()
	p.query = q
	p.mu.Unlock()
	return p.Render()
}

// Render reconciles the current state.
func (p *JobsPage) Render() JobsView {
	p.mu.Lock()
	query, anomaly := p.query, p.anomaly
	p.mu.Unlock()

	st := p.jobs.State()
	jobs := view.FilterJobs(st.Data, query)
	v := JobsView{
		State:   view.ListState(p.shell.session.IsAuthenticated(), st.IsLoading, len(jobs)),
		Query:   query,
		Raw:     jobs,
		Anomaly: anomaly,
	}
	v.State = view.Degrade(v.State, anomaly)
	for _, j := range jobs {
		v.Jobs = append(v.Jobs, view.NewJob(j))
	}
	return v
}

// Close unmounts the page.
func (p *JobsPage) Close() {
	p.mount.close()
	p.jobs.Close()
}

// JobDetailView is the rendered job detail.
type JobDetailView struct {
	State   view.RenderState
	JobID   types.ID
	Name    string
	Date    string
	Status  string
	Folder  string
	Stats   types.JobStats
	Query   string
	Resumes []view.Resume
	Anomaly error
}

// JobDetailPage shows one job and its candidates.
type JobDetailPage struct {
	shell   *Shell
	resumes *fetcher.JobResumesFetcher
	jobs    *fetcher.JobsFetcher
	tracker *poll.RegressionTracker
	mount   *mount

	mu      sync.Mutex
	query   string
	anomaly error
}

// JobDetailPage creates the job detail page.
func (s *Shell) JobDetailPage() *JobDetailPage {
	p := &JobDetailPage{
		shell:   s,
		resumes: fetcher.NewJobResumesFetcher(s.session, s.backend, s.fetchOptions(true)),
		jobs:    fetcher.NewJobsFetcher(s.session, s.backend, s.fetchOptions(false)),
		tracker: poll.NewRegressionTracker(),
	}
	p.resumes.OnChange(p.observe)
	p.mount = s.watch(p.resumes, p.jobs)
	return p
}

func (p *JobDetailPage) observe(st fetcher.State[types.ID, *types.JobResumes]) {
	if st.IsLoading || st.Err != nil || st.Data == nil {
		return
	}
	anomaly := p.tracker.ObserveResumes(st.Data.Resumes)
	p.mu.Lock()
	p.anomaly = anomaly
	p.mu.Unlock()
}

// Load fetches the job's resumes and the job header concurrently. Either
// may fail without affecting the other. Without a session neither request
// is made and the resumes fetcher redirects.
func (p *JobDetailPage) Load(ctx context.Context, jobID types.ID) JobDetailView {
	var g errgroup.Group
	g.Go(func() error {
		p.resumes.Load(ctx, jobID)
		return nil
	})
	g.Go(func() error {
		p.jobs.Load(ctx, fetcher.NoKey{})
		return nil
	})
	_ = g.Wait()
	return p.Render()
}

// SetQuery changes the candidate search filter.
func (p *JobDetailPage) SetQuery(q string) JobDetailView {
	p.mu.Lock()
	p.query = q
	p.mu.Unlock()
	return p.Render()
}

// Render reconciles the current state.
func (p *JobDetailPage) Render() JobDetailView {
	p.mu.Lock()
	query, anomaly := p.query, p.anomaly
	p.mu.Unlock()

	st := p.resumes.State()
	v := JobDetailView{
		JobID:   st.Key,
		Query:   query,
		Anomaly: anomaly,
		Name:    view.Placeholder,
		Date:    view.Placeholder,
		Status:  view.Placeholder,
		Folder:  view.Placeholder,
	}
	authed := p.shell.session.IsAuthenticated()
	if st.Data == nil {
		v.State = view.DetailState(authed, st.IsLoading, false)
		return v
	}

	detail := st.Data
	if detail.JobName != "" {
		v.Name = detail.JobName
	}
	v.Date = view.FormatDate(detail.JobDate)
	v.Stats = view.ComputeStats(detail.Resumes)
	for _, j := range p.jobs.State().Data {
		if j.ID == st.Key {
			v.Status = string(j.Status)
			if j.FolderName != "" {
				v.Folder = j.FolderName
			}
			break
		}
	}

	filtered := view.FilterResumes(detail.Resumes, query)
	for _, r := range filtered {
		v.Resumes = append(v.Resumes, view.NewResume(r))
	}
	v.State = view.Degrade(view.ListState(authed, st.IsLoading, len(filtered)), anomaly)
	return v
}

// Close unmounts the page.
func (p *JobDetailPage) Close() {
	p.mount.close()
	p.resumes.Close()
	p.jobs.Close()
}

// ResumeView is the rendered resume detail.
type ResumeView struct {
	State   view.RenderState
	Resume  view.Resume
	Raw     *types.Resume
	Anomaly error
}

// ResumePage shows one resume.
type ResumePage struct {
	shell   *Shell
	resume  *fetcher.ResumeFetcher
	tracker *poll.RegressionTracker
	mount   *mount

	mu      sync.Mutex
	anomaly error
}

// ResumePage creates the resume detail page.
func (s *Shell) ResumePage() *ResumePage {
	p := &ResumePage{
		shell:   s,
		resume:  fetcher.NewResumeFetcher(s.session, s.backend, s.fetchOptions(true)),
		tracker: poll.NewRegressionTracker(),
	}
	p.resume.OnChange(p.observe)
	p.mount = s.watch(p.resume)
	return p
}

func (p *ResumePage) observe(st fetcher.State[types.ID, *types.Resume]) {
	if st.IsLoading || st.Err != nil || st.Data == nil {
		return
	}
	anomaly := p.tracker.ObserveResumes([]types.Resume{*st.Data})
	p.mu.Lock()
	p.anomaly = anomaly
	p.mu.Unlock()
}

// Load fetches resumeID. Navigating to another resume while this one is
// loading supersedes it.
func (p *ResumePage) Load(ctx context.Context, resumeID types.ID) ResumeView {
	p.resume.Load(ctx, resumeID)
	return p.Render()
}

// Render reconciles the current state.
func (p *ResumePage) Render() ResumeView {
	p.mu.Lock()
	anomaly := p.anomaly
	p.mu.Unlock()

	st := p.resume.State()
	v := ResumeView{Raw: st.Data, Anomaly: anomaly}
	v.State = view.DetailState(p.shell.session.IsAuthenticated(), st.IsLoading, st.Data != nil)
	if st.Data != nil {
		v.Resume = view.NewResume(*st.Data)
		if err := st.Data.StatusError(); err != nil {
			anomaly = err
			v.Anomaly = anomaly
		}
	}
	v.State = view.Degrade(v.State, anomaly)
	return v
}

// Close unmounts the page.
func (p *ResumePage) Close() {
	p.mount.close()
	p.resume.Close()
}

// NewJobView is the rendered job creation page.
type NewJobView struct {
	State   view.RenderState
	Folders []types.DriveFolder
	Step    wizard.Step
	Draft   wizard.Draft
	Err     error
}

// NewJobPage hosts the job creation wizard.
type NewJobPage struct {
	shell   *Shell
	folders *fetcher.DriveFoldersFetcher
	wizard  *wizard.Wizard
	mount   *mount
}

// NewJobPage creates the job creation page. A successful submission
// returns to the job list.
func (s *Shell) NewJobPage() *NewJobPage {
	p := &NewJobPage{
		shell:   s,
		folders: fetcher.NewDriveFoldersFetcher(s.session, s.backend, s.fetchOptions(true)),
		wizard: wizard.New(s.backend, wizard.Options{
			Logger:      s.logger,
			OnSubmitted: func() { s.nav.Navigate(RouteLanding) },
		}),
	}
	p.mount = s.watch(p.folders)
	return p
}

// Wizard returns the page's wizard.
func (p *NewJobPage) Wizard() *wizard.Wizard { return p.wizard }

// Load fetches the folders offered on step 1.
func (p *NewJobPage) Load(ctx context.Context) NewJobView {
	p.folders.Load(ctx, fetcher.NoKey{})
	return p.Render()
}

// Render reconciles the current state.
func (p *NewJobPage) Render() NewJobView {
	st := p.folders.State()
	return NewJobView{
		State:   view.ListState(p.shell.session.IsAuthenticated(), st.IsLoading, len(st.Data)),
		Folders: st.Data,
		Step:    p.wizard.Step(),
		Draft:   p.wizard.Draft(),
		Err:     p.wizard.SubmitError(),
	}
}

// Close unmounts the page.
func (p *NewJobPage) Close() {
	p.mount.close()
	p.folders.Close()
}
