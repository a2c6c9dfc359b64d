package attendance

import (
	"context"
	"sync"

	attendanceerrors "obracheck/internal/attendance/errors"
	"obracheck/internal/shared/contextutil"
)

// WriteFunc sends a roster snapshot to the backend. It runs on its own
// goroutine and must honour ctx.
type WriteFunc func(ctx context.Context, key RosterKey, snapshot Roster)

// RosterStore holds one session per RosterKey. All roster mutation happens
// under the session mutex and never spans a network call.
type RosterStore struct {
	mu       sync.Mutex
	sessions map[RosterKey]*session
	inflight sync.WaitGroup
}

type session struct {
	mu       sync.Mutex
	siteName string
	roster   Roster
	closed   bool

	ctx    context.Context
	cancel context.CancelFunc
	writes sync.WaitGroup
}

func NewRosterStore() *RosterStore {
	return &RosterStore{sessions: make(map[RosterKey]*session)}
}

func (s *RosterStore) open(key RosterKey) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[key]; ok {
		return sess
	}
	ctx, cancel := context.WithCancel(context.Background())
	sess := &session{ctx: ctx, cancel: cancel}
	s.sessions[key] = sess
	return sess
}

func (s *RosterStore) get(key RosterKey) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[key]
	return sess, ok
}

// Replace publishes a freshly reconciled roster. Concurrent loads are not
// ordered: the last one to publish wins.
func (s *RosterStore) Replace(key RosterKey, siteName string, roster Roster) SiteRoster {
	for {
		sess := s.open(key)
		sess.mu.Lock()
		if sess.closed {
			// lost a race with Close, open a fresh session
			sess.mu.Unlock()
			continue
		}
		sess.siteName = siteName
		sess.roster = roster.Clone()
		view := sess.viewLocked(key)
		sess.mu.Unlock()
		return view
	}
}

func (s *RosterStore) Snapshot(key RosterKey) (SiteRoster, bool) {
	sess, ok := s.get(key)
	if !ok {
		return SiteRoster{}, false
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return SiteRoster{}, false
	}
	return sess.viewLocked(key), true
}

// Apply sets the status of one worker and hands a copy of the whole roster to
// write. The mutation and the copy are taken atomically; write runs detached,
// bound to the session context and carrying the request metadata of ctx.
// Unknown workers leave the roster untouched and write is never called.
func (s *RosterStore) Apply(ctx context.Context, key RosterKey, workerID int64, status Status, write WriteFunc) (SiteRoster, error) {
	sess, ok := s.get(key)
	if !ok {
		return SiteRoster{}, attendanceerrors.ErrWorkerNotInRoster
	}

	sess.mu.Lock()
	if sess.closed {
		sess.mu.Unlock()
		return SiteRoster{}, attendanceerrors.ErrWorkerNotInRoster
	}
	idx := sess.roster.IndexOf(workerID)
	if idx < 0 {
		sess.mu.Unlock()
		return SiteRoster{}, attendanceerrors.ErrWorkerNotInRoster
	}

	sess.roster[idx].Status = status
	snapshot := sess.roster.Clone()
	view := sess.viewLocked(key)

	sess.writes.Add(1)
	s.inflight.Add(1)
	writeCtx := contextutil.CopyMetadata(sess.ctx, ctx)
	sess.mu.Unlock()

	go func() {
		defer s.inflight.Done()
		defer sess.writes.Done()
		write(writeCtx, key, snapshot)
	}()

	return view, nil
}

// Close discards the roster and cancels its outstanding writes. It reports
// whether a session existed.
func (s *RosterStore) Close(key RosterKey) bool {
	s.mu.Lock()
	sess, ok := s.sessions[key]
	delete(s.sessions, key)
	s.mu.Unlock()

	if !ok {
		return false
	}
	sess.shut()
	sess.cancel()
	return true
}

// Wait blocks until every write dispatched by the session has returned.
func (s *RosterStore) Wait(key RosterKey) {
	if sess, ok := s.get(key); ok {
		sess.writes.Wait()
	}
}

// Shutdown closes every session and lets in-flight writes finish. Writes still
// running when ctx expires are cancelled.
func (s *RosterStore) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	sessions := make([]*session, 0, len(s.sessions))
	for key, sess := range s.sessions {
		sessions = append(sessions, sess)
		delete(s.sessions, key)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.shut()
	}

	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}

	for _, sess := range sessions {
		sess.cancel()
	}
	return err
}

func (sess *session) shut() {
	sess.mu.Lock()
	sess.closed = true
	sess.roster = nil
	sess.mu.Unlock()
}

func (sess *session) viewLocked(key RosterKey) SiteRoster {
	return SiteRoster{
		Key:      key,
		SiteName: sess.siteName,
		Records:  sess.roster.Clone(),
	}
}
