package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/julianstephens/lumen/internal/constants"
)

// LoadDotEnv loads .env files in priority order: .env.local, .env, then the
// .env next to the settings database. godotenv.Load never overrides a
// variable that is already set, so the process environment wins and earlier
// files win over later ones. Returns the files actually loaded.
func LoadDotEnv(configDir string) []string {
	candidates := []string{".env.local", ".env"}
	if configDir != "" {
		candidates = append(candidates, filepath.Join(configDir, ".env"))
	}

	var loaded []string
	for _, f := range candidates {
		if _, err := os.Stat(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Dir returns the directory that holds the settings database, lockfile and
// logs for a --config value. Values that are not file paths, such as
// connection strings, "keyring" or ":memory:", map to the default directory.
func Dir(configPath string) string {
	notAFile := !strings.ContainsAny(configPath, `/\.`)
	if notAFile || strings.Contains(configPath, "://") || strings.Contains(configPath, "host=") {
		return filepath.Dir(ExpandPath(constants.DefaultConfigPath))
	}
	return filepath.Dir(ExpandPath(configPath))
}
