// Package sessions stores login tokens. Every session carries a TTL; expired
// tokens are rejected on lookup and purged opportunistically.
package sessions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mamadbah2/shiftreport/internal/domain/models"
)

type memorySession struct {
	employeeID string
	expiresAt  time.Time
}

// MemoryStore keeps sessions in process memory. Sessions are lost on restart.
type MemoryStore struct {
	sessions map[string]memorySession
	ttl      time.Duration
	now      func() time.Time
	mu       sync.RWMutex
}

// NewMemoryStore creates an in-memory store with the given session lifetime.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memorySession),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Put registers a token for an employee and sweeps expired sessions.
func (s *MemoryStore) Put(_ context.Context, token, employeeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for t, sess := range s.sessions {
		if !now.Before(sess.expiresAt) {
			delete(s.sessions, t)
		}
	}
	s.sessions[token] = memorySession{employeeID: employeeID, expiresAt: now.Add(s.ttl)}
	return nil
}

// Get resolves a token to its employee id.
func (s *MemoryStore) Get(_ context.Context, token string) (string, error) {
	s.mu.RLock()
	sess, exists := s.sessions[token]
	s.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("%w: unknown session", models.ErrUnauthorized)
	}
	if !s.now().Before(sess.expiresAt) {
		_ = s.Delete(context.Background(), token)
		return "", fmt.Errorf("%w: session expired", models.ErrUnauthorized)
	}
	return sess.employeeID, nil
}

// Delete removes a token. Unknown tokens are ignored.
func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// Len reports the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
