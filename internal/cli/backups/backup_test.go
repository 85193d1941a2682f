package backups

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/lumen/internal/backup"
	"github.com/julianstephens/lumen/internal/cli"
	"github.com/julianstephens/lumen/internal/models"
	"github.com/julianstephens/lumen/internal/storage"
	"github.com/julianstephens/lumen/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "lumen.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return cli.NewContext(store, dir, ""), dbPath
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, dbPath := setupTestDB(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list on empty dir failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	backups, err := backup.NewManager(dbPath).ListBackups()
	if err != nil || len(backups) != 1 {
		t.Fatalf("ListBackups() = %v, %v; want one backup", backups, err)
	}
}

func TestBackupRequiresSQLite(t *testing.T) {
	ctx := cli.NewContext(storage.NewMemoryStore(), t.TempDir(), "")
	if err := (&BackupCreateCmd{}).Run(ctx); err == nil {
		t.Error("expected error for memory store")
	}
	if err := (&BackupRestoreCmd{BackupFile: "x.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected error for memory store")
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, dbPath := setupTestDB(t)

	original := models.DefaultSettings()
	original.Speed = 3
	if err := ctx.Settings.Commit(original); err != nil {
		t.Fatal(err)
	}
	backupPath, err := backup.NewManager(dbPath).CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	changed := original
	changed.Speed = 8
	if err := ctx.Settings.Commit(changed); err != nil {
		t.Fatal(err)
	}

	t.Run("declined", func(t *testing.T) {
		confirmInput = strings.NewReader("n\n")
		if err := (&BackupRestoreCmd{BackupFile: filepath.Base(backupPath)}).Run(ctx); err != nil {
			t.Fatal(err)
		}
		if got := ctx.Settings.Load(); got.Speed != 8 {
			t.Errorf("speed = %d after declined restore", got.Speed)
		}
	})

	t.Run("confirmed", func(t *testing.T) {
		confirmInput = strings.NewReader("yes\n")
		if err := (&BackupRestoreCmd{BackupFile: filepath.Base(backupPath)}).Run(ctx); err != nil {
			t.Fatal(err)
		}
		if err := ctx.Store.Load(); err != nil {
			t.Fatal(err)
		}
		if got := ctx.Settings.Load(); got.Speed != 3 {
			t.Errorf("speed = %d after restore, want 3", got.Speed)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if err := (&BackupRestoreCmd{BackupFile: "nope.db", Yes: true}).Run(ctx); err == nil {
			t.Error("expected error for missing backup")
		}
	})
}
