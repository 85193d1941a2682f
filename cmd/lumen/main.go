package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/lumen/internal/cli"
	"github.com/julianstephens/lumen/internal/cli/backups"
	"github.com/julianstephens/lumen/internal/cli/settings"
	"github.com/julianstephens/lumen/internal/cli/system"
	"github.com/julianstephens/lumen/internal/config"
	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/errors"
	"github.com/julianstephens/lumen/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite path, .json cookie jar, ':memory:', 'keyring', or a PostgreSQL connection string without a password." type:"string" default:"${config}" env:"LUMEN_CONFIG"`
	Images  string `help:"Image manifest (.json/.yaml) or directory of images. Defaults to the built-in slides." type:"path" env:"LUMEN_IMAGES"`
	Debug   bool   `help:"Enable debug logging." env:"LUMEN_DEBUG"`

	Tui      system.TuiCmd     `cmd:"" help:"Run the screensaver." default:"1"`
	Init     system.InitCmd    `cmd:"" help:"Initialize lumen storage."`
	Migrate  system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Snap     system.SnapCmd    `cmd:"" help:"Snap a release position to the grid."`
	Assets   system.AssetsCmd  `cmd:"" help:"List the slideshow images."`
	Settings struct {
		Show   settings.SettingsCmd `cmd:"" help:"View or change settings." default:"withargs"`
		Export settings.ExportCmd   `cmd:"" help:"Export settings as JSON or YAML."`
		Import settings.ImportCmd   `cmd:"" help:"Import a settings file."`
	} `cmd:"" help:"Manage screensaver settings."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Delete the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability." default:"1"`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

// Commands that open storage on their own or never touch it
var skipLoad = map[string]bool{
	"init":    true,
	"doctor":  true,
	"snap":    true,
	"assets":  true,
	"keyring": true,
}

func main() {
	// .env files may set LUMEN_CONFIG, so they are read before flags are parsed
	preConfig := constants.DefaultConfigPath
	if v := os.Getenv("LUMEN_CONFIG"); v != "" {
		preConfig = v
	}
	config.LoadDotEnv(config.Dir(preConfig))

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Terminal screensaver with a snap-to-grid clock"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"config":  constants.DefaultConfigPath,
			"grid":    strconv.Itoa(constants.DefaultGridSize),
		},
	)

	command := strings.Fields(ctx.Command())[0]
	configDir := config.Dir(CLI.Config)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir,
		Quiet:     command == "tui",
	}); err != nil {
		errors.Fatalf("failed to initialize logging in %s: %v", configDir, err)
	}

	store, err := cli.OpenStore(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	appCtx := cli.NewContext(store, configDir, CLI.Images)

	if !skipLoad[command] {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close storage", "error", closeErr)
	}
	errors.Fatal(err)
}
