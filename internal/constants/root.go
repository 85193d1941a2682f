package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "lumen"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/lumen/lumen.db"
	Version            = "v0.1.0"

	// EnvConnectionString overrides the PostgreSQL connection string from the keyring
	EnvConnectionString = "LUMEN_DB_CONNECTION"

	// DateFormat is the date line shown under the clock when enabled
	DateFormat = "Mon, Jan 2 2006"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "lumen-"
	BackupFileSuffix = ".db"

	// Lock constants
	LockfileName = "lumen.lock"

	// Timer constants
	ClockTickInterval  = time.Second
	TransitionFrames   = 8
	TransitionInterval = 60 * time.Millisecond

	// DefaultGridSize is the snap-to-grid cell size in pixels
	DefaultGridSize = 50

	// CellWidthPx and CellHeightPx map terminal cells onto the pixel plane the
	// grid is defined in. A terminal cell is roughly twice as tall as wide.
	CellWidthPx  = 10
	CellHeightPx = 20
)

// Session States
const (
	StateScreensaver SessionState = iota
	StateSettings
	StateHelp
)
