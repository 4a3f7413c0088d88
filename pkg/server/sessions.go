package server

import (
	"sync"

	"scout/pkg/api"
)

// SessionStore keeps per-session conversation history in memory, isolated by
// session ID. History holds only user and assistant turns; tool transcripts
// are internal to a single orchestrator run and never persisted here.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string][]api.HistoryTurn
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string][]api.HistoryTurn),
	}
}

// History returns a copy of the session's turns so callers can't mutate the
// stored slice while another request appends to it.
func (s *SessionStore) History(sessionID string) []api.HistoryTurn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns := s.sessions[sessionID]
	out := make([]api.HistoryTurn, len(turns))
	copy(out, turns)
	return out
}

// Append records a completed exchange (the user's query and the final
// answer) against the session.
func (s *SessionStore) Append(sessionID string, turns ...api.HistoryTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], turns...)
}

// Clear drops a session's history.
func (s *SessionStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
