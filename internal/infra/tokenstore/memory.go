package tokenstore

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/garage-coop/internal/domain/account"
)

type entry struct {
	payload   string
	expiresAt time.Time
}

// MemoryStore is the single-process fallback used when no redis is
// configured. Entries vanish on restart.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, purpose, token, payload string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep()
	s.entries[key(purpose, token)] = entry{
		payload:   payload,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Take(_ context.Context, purpose, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(purpose, token)
	e, ok := s.entries[k]
	if !ok {
		return "", account.ErrTokenNotFound
	}
	delete(s.entries, k)

	if !s.now().Before(e.expiresAt) {
		return "", account.ErrTokenNotFound
	}
	return e.payload, nil
}

// sweep drops expired entries; callers hold mu.
func (s *MemoryStore) sweep() {
	now := s.now()
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
		}
	}
}

var _ account.TokenStore = (*MemoryStore)(nil)
