package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/lumen/internal/cli"
	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/storage"
	"github.com/julianstephens/lumen/internal/storage/sqlite"
)

type InitCmd struct {
	Force bool `help:"Delete existing storage (or the stored settings record) before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	_, isSQLite := ctx.Store.(*sqlite.Store)
	if c.Force && isSQLite {
		if err := c.removeDatabase(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}

	// Providers without a database file keep their jar; only the record goes.
	if c.Force && !isSQLite {
		err := ctx.Store.DeleteCookie(constants.CookieSettings)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("failed to clear stored settings: %w", err)
		}
	}

	fmt.Printf("Initialized lumen storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}

func (c *InitCmd) removeDatabase(ctx *cli.Context) error {
	store := ctx.Store.(*sqlite.Store)
	dbPath := store.GetConfigPath()
	if _, err := os.Stat(dbPath); err == nil {
		if err := store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}
