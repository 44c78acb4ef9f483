package memory

import (
	"context"
	"sync"
	"time"

	"quiz-master-gateway/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
// Expired sessions are reaped lazily on read.
type SessionStore struct {
	clock func() time.Time

	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		clock:    time.Now,
		sessions: make(map[string]domain.Session),
	}
}

func (s *SessionStore) Put(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (domain.Session, bool, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return domain.Session{}, false, nil
	}
	if session.Expired(s.clock()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return domain.Session{}, false, nil
	}
	return session, true, nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
