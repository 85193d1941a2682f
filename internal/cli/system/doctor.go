package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/lumen/internal/assets"
	"github.com/julianstephens/lumen/internal/backup"
	"github.com/julianstephens/lumen/internal/cli"
	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/keyring"
	"github.com/julianstephens/lumen/internal/lock"
	"github.com/julianstephens/lumen/internal/settings"
	"github.com/julianstephens/lumen/internal/storage"
)

type DoctorCmd struct{}

// check is one diagnostic. Warnings never fail the command.
type check struct {
	name     string
	needsDB  bool
	warnOnly bool
	run      func(*cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Settings blob", needsDB: true, run: checkSettingsBlob},
	{name: "Images", run: checkImages},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Keyring", warnOnly: true, run: checkKeyring},
	{name: "Screensaver lock", warnOnly: true, run: checkLock},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := true

	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case errors.Is(err, errSkipped):
			fmt.Printf("⊘ %s: SKIPPED\n", c.name)
		case err != nil && c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		case err != nil:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		default:
			fmt.Printf("✓ %s: OK\n", c.name)
		}
	}

	fmt.Println()
	if hasError {
		return errors.New("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

var errSkipped = errors.New("skipped")

func checkSchemaVersion(ctx *cli.Context) error {
	db, ok := ctx.Store.(storage.DBProvider)
	if !ok {
		return errSkipped
	}
	return db.ValidateSchema()
}

func checkMigrationsComplete(ctx *cli.Context) error {
	db, ok := ctx.Store.(storage.DBProvider)
	if !ok {
		return errSkipped
	}
	pending, err := db.PendingMigrations()
	if err != nil {
		return err
	}
	if pending > 0 {
		return fmt.Errorf("%d pending migration(s), run 'lumen migrate'", pending)
	}
	return nil
}

// checkSettingsBlob fails when a stored blob would be discarded by Load.
func checkSettingsBlob(ctx *cli.Context) error {
	cookie, err := ctx.Store.GetCookie(constants.CookieSettings)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := settings.Decode([]byte(cookie.Value)); err != nil {
		return fmt.Errorf("stored settings are invalid and defaults are in use: %w", err)
	}
	return nil
}

func checkImages(ctx *cli.Context) error {
	library, err := assets.Open(ctx.Images)
	if err != nil {
		return err
	}
	for i := 0; i < library.Len(); i++ {
		if err := checkImage(library, i); err != nil {
			return fmt.Errorf("%s: %w", library.Images()[i].Src, err)
		}
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	dbPath, err := ctx.SQLitePath()
	if err != nil {
		return errSkipped
	}
	backups, err := backup.NewManager(dbPath).ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return errors.New("no backups found, run 'lumen backup create'")
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkLock(ctx *cli.Context) error {
	pid, running, err := lock.Holder(ctx.ConfigDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if running {
		fmt.Printf("ℹ Screensaver running (pid %d)\n", pid)
		return nil
	}
	return fmt.Errorf("stale lockfile from pid %d, it will be replaced on next start", pid)
}
