package poll

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/jonathan/resume-review-dashboard/internal/types"
)

const (
	DefaultInterval    = 2 * time.Second
	DefaultMaxInterval = 30 * time.Second
	DefaultMultiplier  = 2.0
	DefaultMaxAttempts = 60
)

// ErrJobNotFound is returned when the watched job never appeared in the
// job listing.
var ErrJobNotFound = errors.New("job not found")

// ExhaustedError is returned when the attempt limit is reached before the
// job finished.
type ExhaustedError struct {
	JobID    types.ID
	Attempts int
	Last     types.JobStatus
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("job %s still %s after %d polls", e.JobID, e.Last, e.Attempts)
}

// JobSource lists jobs.
type JobSource interface {
	Jobs(ctx context.Context) ([]types.Job, error)
}

// Config controls polling cadence.
type Config struct {
	Interval    time.Duration
	MaxInterval time.Duration
	Multiplier  float64
	MaxAttempts int
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.MaxInterval <= 0 {
		c.MaxInterval = DefaultMaxInterval
	}
	if c.MaxInterval < c.Interval {
		c.MaxInterval = c.Interval
	}
	if c.Multiplier < 1 {
		c.Multiplier = DefaultMultiplier
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	return c
}

// Watcher polls the job listing for one job's status.
type Watcher struct {
	src     JobSource
	cfg     Config
	logger  *log.Logger
	tracker *RegressionTracker
}

// NewWatcher creates a watcher. Zero config fields take the defaults.
func NewWatcher(src JobSource, cfg Config, logger *log.Logger) *Watcher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Watcher{
		src:     src,
		cfg:     cfg.withDefaults(),
		logger:  logger,
		tracker: NewRegressionTracker(),
	}
}

// Watch polls until jobID reaches a terminal status. onUpdate, if set, runs
// each time the observed status changes. Polling stops early on context
// cancellation or a status regression; it gives up after MaxAttempts polls.
// Failed polls count as attempts and back off like any other.
func (w *Watcher) Watch(ctx context.Context, jobID types.ID, onUpdate func(types.Job)) (types.Job, error) {
	var (
		last     types.Job
		seen     bool
		interval = w.cfg.Interval
	)

	for attempt := 1; attempt <= w.cfg.MaxAttempts; attempt++ {
		job, found, err := w.poll(ctx, jobID)
		switch {
		case ctx.Err() != nil:
			return last, ctx.Err()
		case err != nil:
			w.logger.Printf("[poll] attempt %d for job %s failed: %v", attempt, jobID, err)
		case !found:
			w.logger.Printf("[poll] job %s not listed yet (attempt %d)", jobID, attempt)
		default:
			changed := !seen || job.Status != last.Status
			if terr := w.tracker.ObserveJobs([]types.Job{job}); terr != nil {
				var regression *types.StatusRegressionError
				if errors.As(terr, &regression) {
					w.logger.Printf("[poll] %v", terr)
					return job, terr
				}
				w.logger.Printf("[poll] %v", terr)
			}
			if changed {
				interval = w.cfg.Interval
				if onUpdate != nil {
					onUpdate(job)
				}
			}
			last, seen = job, true
			if job.Status.Terminal() {
				return job, nil
			}
		}

		if attempt == w.cfg.MaxAttempts {
			break
		}
		if err := sleep(ctx, interval); err != nil {
			return last, err
		}
		interval = w.next(interval)
	}

	if !seen {
		return last, fmt.Errorf("job %s: %w", jobID, ErrJobNotFound)
	}
	return last, &ExhaustedError{JobID: jobID, Attempts: w.cfg.MaxAttempts, Last: last.Status}
}

func (w *Watcher) poll(ctx context.Context, jobID types.ID) (types.Job, bool, error) {
	jobs, err := w.src.Jobs(ctx)
	if err != nil {
		return types.Job{}, false, err
	}
	for _, j := range jobs {
		if j.ID == jobID {
			return j, true, nil
		}
	}
	return types.Job{}, false, nil
}

func (w *Watcher) next(d time.Duration) time.Duration {
	n := time.Duration(float64(d) * w.cfg.Multiplier)
	if n > w.cfg.MaxInterval {
		return w.cfg.MaxInterval
	}
	return n
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
