package engine

import (
	"errors"
	"fmt"
	"sync"

	"capture/agent"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// Sessions tracks the live sessions of a server. Different sessions may
// be driven concurrently.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]*Session)}
}

// Create starts a session for team under a fresh random id.
func (s *Sessions) Create(team *agent.Team, opts ...Option) *Session {
	session := NewSession(uuid.NewString(), team, opts...)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = session
	return session
}

func (s *Sessions) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return session, nil
}

// Remove forgets a session and returns it.
func (s *Sessions) Remove(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	return session, nil
}

func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}
