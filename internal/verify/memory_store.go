package verify

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	userID    string
	expiresAt time.Time
}

// MemoryTokenStore is the fallback used when redis is not configured.
// Tokens live only as long as the process does.
type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]memoryEntry
	now    func() time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{
		tokens: make(map[string]memoryEntry),
		now:    time.Now,
	}
}

func (s *MemoryTokenStore) Issue(_ context.Context, userID string, ttl time.Duration) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Unredeemed tokens would otherwise pile up for the process
	// lifetime; sweep the expired ones while we hold the lock.
	now := s.now()
	for k, entry := range s.tokens {
		if now.After(entry.expiresAt) {
			delete(s.tokens, k)
		}
	}

	s.tokens[token] = memoryEntry{
		userID:    userID,
		expiresAt: now.Add(ttl),
	}
	return token, nil
}

func (s *MemoryTokenStore) Consume(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.tokens[token]
	if !ok {
		return "", ErrTokenInvalid
	}
	delete(s.tokens, token)

	if s.now().After(entry.expiresAt) {
		return "", ErrTokenInvalid
	}
	return entry.userID, nil
}
