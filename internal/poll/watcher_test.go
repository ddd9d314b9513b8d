package poll

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-review-dashboard/internal/types"
)

// scriptedSource answers each Jobs call with the next scripted step.
type scriptedSource struct {
	mu    sync.Mutex
	steps []func() ([]types.Job, error)
	calls int
}

func (s *scriptedSource) Jobs(context.Context) ([]types.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	s.calls++
	if i >= len(s.steps) {
		i = len(s.steps) - 1
	}
	return s.steps[i]()
}

func status(id types.ID, st types.JobStatus) func() ([]types.Job, error) {
	return func() ([]types.Job, error) {
		return []types.Job{{ID: "other", Status: types.JobQueued}, {ID: id, Name: "Fall", Status: st}}, nil
	}
}

func fail() ([]types.Job, error) { return nil, errors.New("503") }

func fastConfig(attempts int) Config {
	return Config{Interval: time.Millisecond, MaxInterval: 4 * time.Millisecond, Multiplier: 2, MaxAttempts: attempts}
}

func TestWatch_UntilTerminal(t *testing.T) {
	src := &scriptedSource{steps: []func() ([]types.Job, error){
		status("7", types.JobQueued),
		fail,
		status("7", types.JobProcessing),
		status("7", types.JobProcessing),
		status("7", types.JobCompleted),
	}}

	var updates []types.JobStatus
	job, err := NewWatcher(src, fastConfig(10), nil).Watch(context.Background(), "7", func(j types.Job) {
		updates = append(updates, j.Status)
	})

	require.NoError(t, err)
	assert.Equal(t, types.JobCompleted, job.Status)
	assert.Equal(t, []types.JobStatus{types.JobQueued, types.JobProcessing, types.JobCompleted}, updates)
	assert.Equal(t, 5, src.calls)
}

func TestWatch_StopsOnRegression(t *testing.T) {
	src := &scriptedSource{steps: []func() ([]types.Job, error){
		status("7", types.JobProcessing),
		status("7", types.JobQueued),
	}}

	job, err := NewWatcher(src, fastConfig(10), nil).Watch(context.Background(), "7", nil)

	var regression *types.StatusRegressionError
	require.True(t, errors.As(err, &regression))
	assert.Equal(t, "processing", regression.From)
	assert.Equal(t, "queued", regression.To)
	assert.Equal(t, types.JobQueued, job.Status)
	assert.Equal(t, 2, src.calls)
}

func TestWatch_UnknownStatusKeepsPolling(t *testing.T) {
	src := &scriptedSource{steps: []func() ([]types.Job, error){
		status("7", types.JobUnknown),
		status("7", types.JobFailed),
	}}

	job, err := NewWatcher(src, fastConfig(5), nil).Watch(context.Background(), "7", nil)
	require.NoError(t, err)
	assert.Equal(t, types.JobFailed, job.Status)
}

func TestWatch_AttemptLimit(t *testing.T) {
	src := &scriptedSource{steps: []func() ([]types.Job, error){status("7", types.JobProcessing)}}

	_, err := NewWatcher(src, fastConfig(3), nil).Watch(context.Background(), "7", nil)

	var exhausted *ExhaustedError
	require.True(t, errors.As(err, &exhausted))
	assert.Equal(t, 3, exhausted.Attempts)
	assert.Equal(t, types.JobProcessing, exhausted.Last)
	assert.Equal(t, 3, src.calls)
}

func TestWatch_JobNeverListed(t *testing.T) {
	src := &scriptedSource{steps: []func() ([]types.Job, error){status("other-job", types.JobQueued)}}

	_, err := NewWatcher(src, fastConfig(2), nil).Watch(context.Background(), "7", nil)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestWatch_ContextCancel(t *testing.T) {
	src := &scriptedSource{steps: []func() ([]types.Job, error){status("7", types.JobProcessing)}}
	ctx, cancel := context.WithCancel(context.Background())

	w := NewWatcher(src, Config{Interval: time.Hour, MaxAttempts: 100}, nil)
	done := make(chan error, 1)
	go func() {
		_, err := w.Watch(ctx, "7", nil)
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop on cancel")
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{Interval: time.Minute, MaxInterval: time.Second}.withDefaults()
	assert.Equal(t, time.Minute, cfg.MaxInterval)
	assert.Equal(t, DefaultMultiplier, cfg.Multiplier)
	assert.Equal(t, DefaultMaxAttempts, cfg.MaxAttempts)
}

func TestNext_CapsAtMaxInterval(t *testing.T) {
	w := NewWatcher(&scriptedSource{}, fastConfig(1), nil)
	assert.Equal(t, 2*time.Millisecond, w.next(time.Millisecond))
	assert.Equal(t, 4*time.Millisecond, w.next(3*time.Millisecond))
}
