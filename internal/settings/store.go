package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/logger"
	"github.com/julianstephens/lumen/internal/models"
	"github.com/julianstephens/lumen/internal/storage"
)

// Event is delivered to subscribers after every successful commit.
// Receivers must call Load again rather than trust any copy they hold.
type Event struct {
	Revision    string
	CommittedAt time.Time
}

// Store persists the settings record as a single cookie and fans out a
// reinitialize event on each commit.
type Store struct {
	provider storage.Provider
	now      func() time.Time

	mu          sync.Mutex
	subscribers map[int]chan Event
	nextID      int
}

func NewStore(provider storage.Provider) *Store {
	return &Store{
		provider:    provider,
		now:         time.Now,
		subscribers: make(map[int]chan Event),
	}
}

// Load returns the persisted record, or the defaults when the blob is
// missing, expired or cannot be decoded into a complete valid record.
func (s *Store) Load() models.Settings {
	c, err := s.provider.GetCookie(constants.CookieSettings)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to read settings, using defaults", "error", err)
		} else {
			logger.Debug("No saved settings, using defaults")
		}
		return models.DefaultSettings()
	}

	record, err := Decode([]byte(c.Value))
	if err != nil {
		logger.Warn("Saved settings are unusable, using defaults", "error", err)
		return models.DefaultSettings()
	}
	return record
}

// Commit replaces the persisted record and notifies every subscriber.
func (s *Store) Commit(record models.Settings) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	now := s.now()
	revision := uuid.NewString()
	cookie := storage.Cookie{
		Name:      constants.CookieSettings,
		Value:     string(data),
		Revision:  revision,
		ExpiresAt: now.AddDate(0, 0, constants.CookieRetentionDays),
		UpdatedAt: now,
	}
	if err := s.provider.SetCookie(cookie); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	logger.Debug("Settings committed", "revision", revision)
	s.broadcast(Event{Revision: revision, CommittedAt: now})
	return nil
}

// Reset commits the default record.
func (s *Store) Reset() error {
	return s.Commit(models.DefaultSettings())
}

// Revision returns the revision of the stored blob, or "" when there is none.
func (s *Store) Revision() string {
	c, err := s.provider.GetCookie(constants.CookieSettings)
	if err != nil {
		return ""
	}
	return c.Revision
}

// Subscribe registers for commit events. The returned func unsubscribes and
// closes the channel; it is safe to call more than once.
func (s *Store) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// broadcast never blocks: a subscriber that has not drained its previous
// event has it replaced by the newer one.
func (s *Store) broadcast(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- ev:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- ev:
		default:
		}
	}
}

// Decode parses a settings blob. Every field must be present with the right
// type and the result must pass validation. Unknown fields are ignored.
func Decode(data []byte) (models.Settings, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return models.Settings{}, fmt.Errorf("not a settings object: %w", err)
	}
	for _, key := range models.SettingKeys {
		raw, ok := fields[key]
		if !ok {
			return models.Settings{}, fmt.Errorf("missing field %q", key)
		}
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return models.Settings{}, fmt.Errorf("field %q is null", key)
		}
	}

	var record models.Settings
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&record); err != nil {
		return models.Settings{}, fmt.Errorf("malformed settings: %w", err)
	}
	if err := record.Validate(); err != nil {
		return models.Settings{}, err
	}
	return record, nil
}
