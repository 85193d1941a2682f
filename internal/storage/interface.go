package storage

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a cookie is absent or has expired
var ErrNotFound = errors.New("cookie not found")

// Cookie is a named client-side storage entry with an expiry
type Cookie struct {
	Name      string
	Value     string
	Revision  string
	ExpiresAt time.Time
	UpdatedAt time.Time
}

// Expired reports whether the cookie is no longer valid at now
func (c Cookie) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Cookies
	// GetCookie returns ErrNotFound when the cookie is missing or expired.
	GetCookie(name string) (Cookie, error)
	// SetCookie replaces the named cookie in a single statement.
	SetCookie(Cookie) error
	DeleteCookie(name string) error

	// Utils
	GetConfigPath() string
}

// DBProvider is implemented by SQL-backed providers
type DBProvider interface {
	Provider
	GetDB() *sql.DB
	ValidateSchema() error
	PendingMigrations() (int, error)
}
