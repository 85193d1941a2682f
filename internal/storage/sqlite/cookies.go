package sqlite

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
	var expiresAt, updatedAt string
	err := s.db.QueryRow(
		"SELECT name, value, revision, expires_at, updated_at FROM cookies WHERE name = ?",
		name,
	).Scan(&c.Name, &c.Value, &c.Revision, &expiresAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Cookie{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Cookie{}, fmt.Errorf("failed to read cookie %s: %w", name, err)
	}

	if c.ExpiresAt, err = time.Parse(time.RFC3339Nano, expiresAt); err != nil {
		return storage.Cookie{}, fmt.Errorf("parsing expires_at for cookie %s: %w", name, err)
	}
	if c.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return storage.Cookie{}, fmt.Errorf("parsing updated_at for cookie %s: %w", name, err)
	}

	if c.Expired(time.Now()) {
		return storage.Cookie{}, storage.ErrNotFound
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
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			value = excluded.value,
			revision = excluded.revision,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at`,
		c.Name,
		c.Value,
		c.Revision,
		c.ExpiresAt.UTC().Format(time.RFC3339Nano),
		c.UpdatedAt.UTC().Format(time.RFC3339Nano),
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
	if _, err := s.db.Exec("DELETE FROM cookies WHERE name = ?", name); err != nil {
		return fmt.Errorf("failed to delete cookie %s: %w", name, err)
	}
	return nil
}
