package storage

import (
	"sync"
	"time"
)

// MemoryStore is a Provider that keeps cookies in process memory. Nothing
// survives a restart; used by tests and by --config=:memory: runs.
type MemoryStore struct {
	mu      sync.Mutex
	cookies map[string]Cookie
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cookies: make(map[string]Cookie)}
}

func (s *MemoryStore) Init() error  { return nil }
func (s *MemoryStore) Load() error  { return nil }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) GetCookie(name string) (Cookie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cookies[name]
	if !ok || c.Expired(time.Now()) {
		return Cookie{}, ErrNotFound
	}
	return c, nil
}

func (s *MemoryStore) SetCookie(c Cookie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now()
	}
	s.cookies[c.Name] = c
	return nil
}

func (s *MemoryStore) DeleteCookie(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cookies, name)
	return nil
}

func (s *MemoryStore) GetConfigPath() string {
	return ":memory:"
}
