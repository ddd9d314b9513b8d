// Package fetcher provides session-gated loaders that own one screen's
// {data, loading} state and never let a superseded response overwrite a
// newer one.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/jonathan/resume-review-dashboard/internal/session"
	"github.com/jonathan/resume-review-dashboard/internal/types"
)

// Gate reports whether requests may be issued.
type Gate interface {
	IsAuthenticated() bool
}

// Subscriber delivers session changes.
type Subscriber interface {
	Subscribe(fn session.ChangeFunc) func()
}

// Loader performs the network call for one key.
type Loader[K comparable, T any] func(ctx context.Context, key K) (T, error)

// State is a fetcher's externally visible state. When IsLoading is false and
// Err is nil, Data is the loaded value; after a failure or a gated call Data
// is the zero value.
type State[K comparable, T any] struct {
	Key        K
	Data       T
	IsLoading  bool
	Err        error
	Generation uint64
}

// Options configures a fetcher.
type Options struct {
	// Name labels log lines.
	Name string
	// Logger receives failures and discarded responses. Nil discards.
	Logger *log.Logger
	// OnUnauthenticated runs when a load is refused for lack of a session.
	// Detail pages use it to redirect to the landing view.
	OnUnauthenticated func()
}

// Fetcher loads one entity or collection keyed by K.
type Fetcher[K comparable, T any] struct {
	name   string
	gate   Gate
	load   Loader[K, T]
	logger *log.Logger
	onAnon func()

	mu        sync.Mutex
	state     State[K, T]
	gen       uint64
	cancel    context.CancelFunc
	closed    bool
	hasKey    bool
	listeners []func(State[K, T])

	// version counts state writes; published is the last version handed
	// to listeners.
	version    uint64
	published  uint64
	publishing bool
}

// New creates a fetcher gated by gate.
func New[K comparable, T any](gate Gate, load Loader[K, T], opts Options) *Fetcher[K, T] {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	name := opts.Name
	if name == "" {
		name = "fetch"
	}
	return &Fetcher[K, T]{
		name:   name,
		gate:   gate,
		load:   load,
		logger: logger,
		onAnon: opts.OnUnauthenticated,
	}
}

// State returns the current state.
func (f *Fetcher[K, T]) State() State[K, T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// OnChange registers fn to run after state changes. Listeners are called
// one at a time and always end on the newest state; a state superseded
// while an earlier one was being delivered may be skipped.
func (f *Fetcher[K, T]) OnChange(fn func(State[K, T])) {
	f.mu.Lock()
	f.listeners = append(f.listeners, fn)
	f.mu.Unlock()
}

// Load fetches key and returns the state once this invocation settles. Any
// earlier invocation still in flight is cancelled and its result, should it
// arrive, is discarded. Without a session no request is made: the state is
// cleared and the unauthenticated hook runs.
func (f *Fetcher[K, T]) Load(ctx context.Context, key K) State[K, T] {
	f.mu.Lock()
	if f.closed {
		st := f.state
		f.mu.Unlock()
		return st
	}
	f.gen++
	gen := f.gen
	f.hasKey = true
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}

	if !f.gate.IsAuthenticated() {
		f.setLocked(State[K, T]{Key: key, Generation: gen})
		st := f.state
		f.mu.Unlock()

		f.publish()
		if f.onAnon != nil {
			f.onAnon()
		}
		return st
	}

	loadCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.setLocked(State[K, T]{Key: key, IsLoading: true, Generation: gen})
	f.mu.Unlock()
	f.publish()

	data, err := f.load(loadCtx, key)
	cancel()

	f.mu.Lock()
	if f.closed || gen != f.gen {
		current := f.state
		f.mu.Unlock()
		f.logger.Printf("[%s] discarding stale response for %v (generation %d, latest %d)", f.name, key, gen, current.Generation)
		return current
	}
	f.cancel = nil
	if err != nil {
		f.logger.Printf("[%s] load %v failed: %v", f.name, key, err)
		f.setLocked(State[K, T]{Key: key, Err: err, Generation: gen})
	} else {
		f.setLocked(State[K, T]{Key: key, Data: data, Generation: gen})
	}
	st := f.state
	f.mu.Unlock()

	f.publish()
	return st
}

// Reload repeats the last Load with the same key. It is a no-op before the
// first Load.
func (f *Fetcher[K, T]) Reload(ctx context.Context) State[K, T] {
	f.mu.Lock()
	key, ok := f.state.Key, f.hasKey
	f.mu.Unlock()
	if !ok {
		return f.State()
	}
	return f.Load(ctx, key)
}

// Watch reloads the current key whenever the session flips between
// anonymous and authenticated. The returned func stops watching.
func (f *Fetcher[K, T]) Watch(ctx context.Context, sub Subscriber) func() {
	return sub.Subscribe(func(prev, next types.Session) {
		if prev.IsAuthenticated == next.IsAuthenticated {
			return
		}
		go f.Reload(ctx)
	})
}

// Close marks the fetcher unmounted: the in-flight request is cancelled and
// no later result is applied.
func (f *Fetcher[K, T]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func (f *Fetcher[K, T]) setLocked(st State[K, T]) {
	f.state = st
	f.version++
}

// publish hands the current state to listeners. Only one goroutine delivers
// at a time; writes made meanwhile are picked up by its loop, so a listener
// never ends on an older state than State returns.
func (f *Fetcher[K, T]) publish() {
	f.mu.Lock()
	if f.publishing {
		f.mu.Unlock()
		return
	}
	f.publishing = true
	for f.published != f.version {
		st, version, listeners := f.state, f.version, f.listeners
		f.mu.Unlock()
		for _, fn := range listeners {
			fn(st)
		}
		f.mu.Lock()
		f.published = version
	}
	f.publishing = false
	f.mu.Unlock()
}

// String identifies the fetcher in logs.
func (f *Fetcher[K, T]) String() string {
	return fmt.Sprintf("fetcher(%s)", f.name)
}
