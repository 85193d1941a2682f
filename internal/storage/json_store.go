package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// jsonCookieJar is the on-disk layout of a JSONStore
type jsonCookieJar struct {
	Version int               `json:"version"`
	Cookies map[string]Cookie `json:"cookies"`
}

// JSONStore keeps cookies in a single JSON file. Selected with a --config
// path ending in .json.
type JSONStore struct {
	path string
	mu   sync.Mutex
	jar  *jsonCookieJar
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.jar = &jsonCookieJar{Version: 1, Cookies: make(map[string]Cookie)}
	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'lumen init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	jar := &jsonCookieJar{}
	if err := json.Unmarshal(data, jar); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if jar.Cookies == nil {
		jar.Cookies = make(map[string]Cookie)
	}
	s.jar = jar
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes to a temp file and renames it over the store so readers never
// observe a half-written jar. Callers hold s.mu.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.jar, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) GetCookie(name string) (Cookie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.jar == nil {
		return Cookie{}, fmt.Errorf("storage not loaded")
	}
	c, ok := s.jar.Cookies[name]
	if !ok || c.Expired(time.Now()) {
		return Cookie{}, ErrNotFound
	}
	return c, nil
}

func (s *JSONStore) SetCookie(c Cookie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.jar == nil {
		return fmt.Errorf("storage not loaded")
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now()
	}
	s.jar.Cookies[c.Name] = c
	return s.save()
}

func (s *JSONStore) DeleteCookie(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.jar == nil {
		return fmt.Errorf("storage not loaded")
	}
	delete(s.jar.Cookies, name)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
