// Package wizard implements the three-step job creation flow.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-review-dashboard/internal/types"
)

// Step is a wizard position.
type Step int

const (
	StepSelectFolder Step = iota + 1
	StepEnterDetails
	StepReviewAndSubmit
	StepSubmitting
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepSelectFolder:
		return "select-folder"
	case StepEnterDetails:
		return "enter-details"
	case StepReviewAndSubmit:
		return "review-and-submit"
	case StepSubmitting:
		return "submitting"
	case StepSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// ErrSubmitting is returned for any control used while a submission is in flight.
var ErrSubmitting = errors.New("job submission in progress")

// ErrSubmitted is returned once the wizard has finished.
var ErrSubmitted = errors.New("job already submitted")

// Draft is the data collected across steps.
type Draft struct {
	Folder      *types.DriveFolder `validate:"required"`
	Name        string             `validate:"required"`
	Description string
}

// Request builds the creation request from the draft.
func (d Draft) Request() types.CreateJobRequest {
	req := types.CreateJobRequest{
		Name:        strings.TrimSpace(d.Name),
		Description: strings.TrimSpace(d.Description),
	}
	if d.Folder != nil {
		req.FolderID = d.Folder.ID
	}
	return req
}

// Submitter creates the job on the backend.
type Submitter interface {
	StartJob(ctx context.Context, req types.CreateJobRequest) error
}

// Options configures a Wizard.
type Options struct {
	Logger *log.Logger
	// OnSubmitted runs after a successful submission, typically redirecting
	// to the job list so it is refetched.
	OnSubmitted func()
}

// Wizard holds the state of one job creation flow. It is safe for
// concurrent use.
type Wizard struct {
	submitter   Submitter
	logger      *log.Logger
	onSubmitted func()
	validate    *validator.Validate

	inFlight atomic.Bool

	mu        sync.Mutex
	step      Step
	draft     Draft
	submitErr error
}

// New creates a wizard positioned on the folder selection step.
func New(s Submitter, opts Options) *Wizard {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Wizard{
		submitter:   s,
		logger:      logger,
		onSubmitted: opts.OnSubmitted,
		validate:    validator.New(),
		step:        StepSelectFolder,
	}
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Draft returns a copy of the collected data.
func (w *Wizard) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	d := w.draft
	if d.Folder != nil {
		f := *d.Folder
		d.Folder = &f
	}
	return d
}

// SubmitError returns the inline error left by the last failed submission.
func (w *Wizard) SubmitError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitErr
}

// Submitting reports whether a submission is in flight. Back and Submit
// controls are disabled while it is true.
func (w *Wizard) Submitting() bool {
	return w.inFlight.Load()
}

// SelectFolder records the folder chosen on step 1.
func (w *Wizard) SelectFolder(f types.DriveFolder) error {
	return w.edit(func(d *Draft) { d.Folder = &f })
}

// SetName records the job name entered on step 2.
func (w *Wizard) SetName(name string) error {
	return w.edit(func(d *Draft) { d.Name = name })
}

// SetDescription records the optional job description.
func (w *Wizard) SetDescription(desc string) error {
	return w.edit(func(d *Draft) { d.Description = desc })
}

func (w *Wizard) edit(fn func(*Draft)) error {
	if w.inFlight.Load() {
		return ErrSubmitting
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.lockedErr(); err != nil {
		return err
	}
	fn(&w.draft)
	return nil
}

// Next advances one step if the current step's guard passes.
func (w *Wizard) Next() error {
	if w.inFlight.Load() {
		return ErrSubmitting
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.lockedErr(); err != nil {
		return err
	}

	switch w.step {
	case StepSelectFolder, StepEnterDetails:
		if err := w.checkLocked(w.step); err != nil {
			return err
		}
		w.step++
		return nil
	default:
		return &StepError{Step: w.step, Message: "no further step; submit instead"}
	}
}

// Back moves one step backwards. Entered data is kept.
func (w *Wizard) Back() error {
	if w.inFlight.Load() {
		return ErrSubmitting
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.lockedErr(); err != nil {
		return err
	}

	switch w.step {
	case StepEnterDetails, StepReviewAndSubmit:
		w.step--
		return nil
	default:
		return &StepError{Step: w.step, Message: "already on the first step"}
	}
}

// GoTo jumps to target. Backward jumps always succeed; forward jumps must
// pass the guard of every step skipped over.
func (w *Wizard) GoTo(target Step) error {
	if target < StepSelectFolder || target > StepReviewAndSubmit {
		return &StepError{Step: target, Message: "not a navigable step"}
	}
	if w.inFlight.Load() {
		return ErrSubmitting
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.lockedErr(); err != nil {
		return err
	}

	for s := w.step; s < target; s++ {
		if err := w.checkLocked(s); err != nil {
			return err
		}
	}
	w.step = target
	return nil
}

// Submit sends the job creation request. Only one submission may be in
// flight; on failure the wizard returns to the review step with the error
// recorded inline and every entered value intact.
func (w *Wizard) Submit(ctx context.Context) error {
	if !w.inFlight.CompareAndSwap(false, true) {
		return ErrSubmitting
	}

	w.mu.Lock()
	if w.step == StepSubmitted {
		w.mu.Unlock()
		w.inFlight.Store(false)
		return ErrSubmitted
	}
	if w.step != StepReviewAndSubmit {
		step := w.step
		w.mu.Unlock()
		w.inFlight.Store(false)
		return &StepError{Step: step, Message: "submit is only available on the review step"}
	}
	for _, s := range []Step{StepSelectFolder, StepEnterDetails} {
		if err := w.checkLocked(s); err != nil {
			w.mu.Unlock()
			w.inFlight.Store(false)
			return err
		}
	}
	req := w.draft.Request()
	w.step = StepSubmitting
	w.submitErr = nil
	w.mu.Unlock()

	w.logger.Printf("[wizard] creating job %q from folder %s", req.Name, req.FolderID)
	err := w.submitter.StartJob(ctx, req)

	w.mu.Lock()
	if err != nil {
		w.logger.Printf("[wizard] job creation failed: %v", err)
		w.step = StepReviewAndSubmit
		w.submitErr = &StepError{Step: StepReviewAndSubmit, Message: "failed to create job", Cause: err}
		serr := w.submitErr
		w.mu.Unlock()
		w.inFlight.Store(false)
		return serr
	}
	w.step = StepSubmitted
	w.mu.Unlock()
	w.inFlight.Store(false)

	if w.onSubmitted != nil {
		w.onSubmitted()
	}
	return nil
}

// lockedErr rejects controls once a submission has started, including one
// that began between the in-flight check and taking the lock.
func (w *Wizard) lockedErr() error {
	switch w.step {
	case StepSubmitting:
		return ErrSubmitting
	case StepSubmitted:
		return ErrSubmitted
	}
	return nil
}

// checkLocked runs the guard for leaving step s.
func (w *Wizard) checkLocked(s Step) error {
	var field string
	switch s {
	case StepSelectFolder:
		field = "Folder"
	case StepEnterDetails:
		field = "Name"
	default:
		return nil
	}

	d := w.draft
	d.Name = strings.TrimSpace(d.Name)
	if err := w.validate.StructPartial(d, field); err != nil {
		return stepError(s, err)
	}
	return nil
}

func stepError(s Step, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &StepError{Step: s, Message: "invalid input", Cause: err}
	}
	fe := verrs[0]
	msg := "invalid input"
	switch fe.Field() {
	case "Folder":
		msg = "select a folder to continue"
	case "Name":
		msg = "job name is required"
	}
	return &StepError{Step: s, Field: fe.Field(), Message: msg, Cause: err}
}
