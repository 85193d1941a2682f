package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/lumen/internal/backup"
	"github.com/julianstephens/lumen/internal/config"
	"github.com/julianstephens/lumen/internal/keyring"
	"github.com/julianstephens/lumen/internal/logger"
	"github.com/julianstephens/lumen/internal/settings"
	"github.com/julianstephens/lumen/internal/storage"
	"github.com/julianstephens/lumen/internal/storage/postgres"
	"github.com/julianstephens/lumen/internal/storage/sqlite"
)

const (
	// KeyringConfig as --config reads the connection string from
	// LUMEN_DB_CONNECTION or the OS keyring
	KeyringConfig = "keyring"
	// MemoryConfig as --config keeps settings for the life of the process
	MemoryConfig = ":memory:"
)

type Context struct {
	Store     storage.Provider
	Settings  *settings.Store
	ConfigDir string
	// Images is the --images source: empty, a manifest or a directory
	Images string
}

// NewContext wires a settings store on top of provider.
func NewContext(provider storage.Provider, configDir, images string) *Context {
	return &Context{
		Store:     provider,
		Settings:  settings.NewStore(provider),
		ConfigDir: configDir,
		Images:    images,
	}
}

// OpenStore picks a storage provider for a --config value: a PostgreSQL URL
// or DSN, "keyring", ":memory:", a .json cookie jar, or a SQLite path.
func OpenStore(cfg string) (storage.Provider, error) {
	switch {
	case cfg == KeyringConfig:
		connStr, source, err := keyring.ResolveConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, errors.New("no connection string found, use 'lumen keyring set' or LUMEN_DB_CONNECTION")
			}
			return nil, err
		}
		logger.Debug("Using PostgreSQL connection string", "source", source)
		return postgres.New(connStr), nil
	case cfg == MemoryConfig:
		return storage.NewMemoryStore(), nil
	case IsPostgresConfig(cfg):
		if _, err := postgres.ValidateConnString(cfg); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w: store it with 'lumen keyring set' and use --config=keyring, or use .pgpass", err)
			}
			return nil, err
		}
		return postgres.New(cfg), nil
	case strings.HasSuffix(strings.ToLower(cfg), ".json"):
		return storage.NewJSONStore(config.ExpandPath(cfg)), nil
	default:
		return sqlite.NewStore(config.ExpandPath(cfg)), nil
	}
}

// IsPostgresConfig reports whether cfg is a PostgreSQL URL or key=value DSN
func IsPostgresConfig(cfg string) bool {
	return postgres.IsConnString(cfg) || strings.Contains(cfg, "host=")
}

// PerformAutomaticBackup backs up a SQLite store and only logs failures
func (c *Context) PerformAutomaticBackup() {
	store, ok := c.Store.(*sqlite.Store)
	if !ok {
		return
	}
	mgr := backup.NewManager(store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// SQLitePath returns the database file behind a SQLite store.
func (c *Context) SQLitePath() (string, error) {
	store, ok := c.Store.(*sqlite.Store)
	if !ok {
		return "", errors.New("backups are only supported for SQLite storage")
	}
	return store.GetConfigPath(), nil
}
