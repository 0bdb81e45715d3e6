package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"solar-wind-forecast/pkg/logger"
)

// Store owns every live session, keyed by the id kept in the session cookie.
type Store struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	l        *logger.Logger
}

func NewStore(ttl time.Duration, l *logger.Logger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		l:        l,
	}
}

// Get returns the session for id and marks it as seen.
func (s *Store) Get(id string) (*Session, bool) {
	s.mutex.RLock()
	sess, ok := s.sessions[id]
	s.mutex.RUnlock()

	if ok {
		sess.touch(s.now())
	}
	return sess, ok
}

// GetOrCreate returns the session for id, or a new session with a fresh id when id is
// empty or unknown. created reports whether the caller must hand out a new cookie.
func (s *Store) GetOrCreate(id string) (sess *Session, created bool) {
	if id != "" {
		if sess, ok := s.Get(id); ok {
			return sess, false
		}
	}

	sess = newSession(uuid.NewString(), s.now())

	s.mutex.Lock()
	s.sessions[sess.ID] = sess
	s.mutex.Unlock()

	return sess, true
}

func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than the ttl. Loading sessions are never evicted.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	now := s.now()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.idleSince(now) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.l.Debug("session janitor stopped")
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				s.l.Info("evicted idle sessions", map[string]any{
					"removed":   removed,
					"remaining": s.Len(),
				})
			}
		}
	}
}
