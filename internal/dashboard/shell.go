// Package dashboard wires the session, fetchers and wizard into the pages
// of the review dashboard.
package dashboard

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/jonathan/resume-review-dashboard/internal/fetcher"
	"github.com/jonathan/resume-review-dashboard/internal/session"
	"github.com/jonathan/resume-review-dashboard/internal/types"
	"github.com/jonathan/resume-review-dashboard/internal/wizard"
)

// Routes.
const (
	RouteLanding  = "/"
	RouteNewJob   = "/jobs/new"
	RouteSettings = "/settings"
)

// JobRoute is the job detail route.
func JobRoute(jobID types.ID) string {
	return fmt.Sprintf("/jobs/%s", jobID)
}

// ResumeRoute is the resume detail route.
func ResumeRoute(jobID, resumeID types.ID) string {
	return fmt.Sprintf("/jobs/%s/resumes/%s", jobID, resumeID)
}

// Backend is everything the dashboard needs from the review backend.
type Backend interface {
	session.Backend
	fetcher.Backend
	wizard.Submitter
	AuthorizeURL() string
}

// Navigator changes the current route.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a func to Navigator.
type NavigatorFunc func(route string)

// Navigate calls f(route).
func (f NavigatorFunc) Navigate(route string) { f(route) }

// Shell is the application root. It owns the session store and is passed
// to every page.
type Shell struct {
	backend Backend
	nav     Navigator
	logger  *log.Logger
	session *session.Store

	mountOnce sync.Once
	mounted   types.Session
}

// NewShell creates a shell. A nil navigator discards redirects.
func NewShell(b Backend, nav Navigator, logger *log.Logger) *Shell {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}
	return &Shell{
		backend: b,
		nav:     nav,
		logger:  logger,
		session: session.NewStore(b, logger),
	}
}

// Session returns the shared session store.
func (s *Shell) Session() *session.Store {
	return s.session
}

// Mount probes the session once per shell; later calls return the first
// result without another request.
func (s *Shell) Mount(ctx context.Context) types.Session {
	s.mountOnce.Do(func() {
		s.mounted = s.session.Probe(ctx)
	})
	return s.mounted
}

// LoginURL is where the user is sent to sign in.
func (s *Shell) LoginURL() string {
	return s.backend.AuthorizeURL()
}

// Logout ends the session and returns to the landing route.
func (s *Shell) Logout(ctx context.Context) {
	s.session.Logout(ctx)
	s.nav.Navigate(RouteLanding)
}

func (s *Shell) redirectToLanding() {
	s.logger.Printf("[dashboard] no session, redirecting to %s", RouteLanding)
	s.nav.Navigate(RouteLanding)
}

// watcher is a fetcher that reloads on session changes.
type watcher interface {
	Watch(ctx context.Context, sub fetcher.Subscriber) func()
}

// mount ties a page's fetchers to the session for the page's lifetime.
type mount struct {
	cancel context.CancelFunc
	stops  []func()
	once   sync.Once
}

// watch subscribes every fetcher to session changes until the returned
// mount is closed.
func (s *Shell) watch(ws ...watcher) *mount {
	ctx, cancel := context.WithCancel(context.Background())
	m := &mount{cancel: cancel}
	for _, w := range ws {
		m.stops = append(m.stops, w.Watch(ctx, s.session))
	}
	return m
}

func (m *mount) close() {
	m.once.Do(func() {
		for _, stop := range m.stops {
			stop()
		}
		m.cancel()
	})
}

func (s *Shell) fetchOptions(redirect bool) fetcher.Options {
	opts := fetcher.Options{Logger: s.logger}
	if redirect {
		opts.OnUnauthenticated = s.redirectToLanding
	}
	return opts
}
