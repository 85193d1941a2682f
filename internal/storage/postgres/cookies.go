package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/lumen/internal/storage"
)

func (s *Store) GetCookie(name string) (storage.Cookie, error) {
	if s.db == nil {
		return storage.Cookie{}, fmt.Errorf("storage not loaded")
	}

	var c storage.Cookie
	err := s.db.QueryRow(
		"SELECT name, value, revision, expires_at, updated_at FROM cookies WHERE name = $1 AND expires_at > $2",
		name, time.Now(),
	).Scan(&c.Name, &c.Value, &c.Revision, &c.ExpiresAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Cookie{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Cookie{}, fmt.Errorf("failed to read cookie %s: %w", name, err)
	}
	return c, nil
}

func (s *Store) SetCookie(c storage.Cookie) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO cookies (name, value, revision, expires_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE SET
			value = EXCLUDED.value,
			revision = EXCLUDED.revision,
			expires_at = EXCLUDED.expires_at,
			updated_at = EXCLUDED.updated_at`,
		c.Name, c.Value, c.Revision, c.ExpiresAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to write cookie %s: %w", c.Name, err)
	}
	return nil
}

func (s *Store) DeleteCookie(name string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, err := s.db.Exec("DELETE FROM cookies WHERE name = $1", name); err != nil {
		return fmt.Errorf("failed to delete cookie %s: %w", name, err)
	}
	return nil
}
