// Package session holds the client's single view of who is logged in.
//
// A Store is created once per dashboard shell and handed to every component
// that gates on authentication; it is the only shared mutable state in the
// client. It moves between two states:
//
//	anonymous --probe success / SetUser--> authenticated
//	authenticated --Logout / probe failure--> anonymous
package session

import (
	"context"
	"io"
	"log"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jonathan/resume-review-dashboard/internal/types"
)

// Backend is the part of the backend the store talks to.
type Backend interface {
	Me(ctx context.Context) (*types.User, error)
	Logout(ctx context.Context) error
}

// ChangeFunc is called after every session write with the previous and the
// new session.
type ChangeFunc func(prev, next types.Session)

// Store is the authoritative in-memory session record.
type Store struct {
	backend Backend
	logger  *log.Logger

	mu      sync.RWMutex
	user    *types.User
	session types.Session

	probes singleflight.Group

	subsMu  sync.Mutex
	subs    map[int]ChangeFunc
	nextSub int
}

// NewStore creates an anonymous store backed by b.
func NewStore(b Backend, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{
		backend: b,
		logger:  logger,
		subs:    make(map[int]ChangeFunc),
	}
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() types.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// IsAuthenticated reports whether a user is set.
func (s *Store) IsAuthenticated() bool {
	return s.Snapshot().IsAuthenticated
}

// User returns a copy of the current user, or nil when anonymous.
func (s *Store) User() *types.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// SetUser replaces the session. nil makes the session anonymous.
func (s *Store) SetUser(u *types.User) {
	var stored *types.User
	if u != nil {
		cp := *u
		stored = &cp
	}

	s.mu.Lock()
	prev := s.session
	s.user = stored
	s.session = types.NewSession(stored)
	next := s.session
	s.mu.Unlock()

	s.notify(prev, next)
}

// Logout asks the backend to end the session and then resets to anonymous.
// The reset happens whatever the backend says; a failed call is only logged.
func (s *Store) Logout(ctx context.Context) {
	if err := s.backend.Logout(ctx); err != nil {
		s.logger.Printf("[session] logout request failed: %v", err)
	}
	s.SetUser(nil)
}

// Probe asks the backend who is logged in and records the answer. Any
// failure makes the session anonymous, except a probe abandoned by its
// caller, which leaves the session untouched. Concurrent probes share one
// request and one write; the first caller's context governs the shared
// request.
func (s *Store) Probe(ctx context.Context) types.Session {
	v, _, _ := s.probes.Do("me", func() (any, error) {
		user, err := s.backend.Me(ctx)
		if err != nil && ctx.Err() != nil {
			s.logger.Printf("[session] probe abandoned, keeping session: %v", err)
		} else if err != nil {
			s.logger.Printf("[session] probe failed, continuing anonymous: %v", err)
			s.SetUser(nil)
		} else {
			s.SetUser(user)
		}
		return s.Snapshot(), nil
	})
	return v.(types.Session)
}

// Subscribe registers fn for session changes and returns a func that
// removes it.
func (s *Store) Subscribe(fn ChangeFunc) func() {
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
		})
	}
}

func (s *Store) notify(prev, next types.Session) {
	s.subsMu.Lock()
	fns := make([]ChangeFunc, 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(prev, next)
	}
}
