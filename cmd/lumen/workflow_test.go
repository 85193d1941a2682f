package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestEndToEndWorkflow drives the built binary through the non-interactive
// commands against an isolated config directory.
func TestEndToEndWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping end-to-end test in short mode")
	}

	cliPath := lumenBinary(t)
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "lumen", "lumen.db")

	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "HOME=") && !strings.HasPrefix(e, "LUMEN_") {
			env = append(env, e)
		}
	}
	env = append(env,
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("LUMEN_CONFIG=%s", dbPath),
	)

	t.Log("Initializing storage...")
	runCmd(t, cliPath, env, "init")

	t.Log("Committing settings...")
	runCmd(t, cliPath, env, "settings", "--speed", "3", "--animation", "Fade", "--no-24h")
	out := runCmd(t, cliPath, env, "settings", "--list")
	for _, want := range []string{"Fade", "timeFormat24Hour:", "false"} {
		if !strings.Contains(out, want) {
			t.Errorf("settings --list missing %q:\n%s", want, out)
		}
	}

	t.Log("Rejecting invalid settings...")
	invalid := exec.Command(cliPath, "settings", "--brightness", "150")
	invalid.Env = env
	if out, err := invalid.CombinedOutput(); err == nil {
		t.Errorf("expected brightness 150 to fail, got:\n%s", out)
	}

	t.Log("Exporting and importing...")
	exportPath := filepath.Join(tempDir, "settings.yaml")
	runCmd(t, cliPath, env, "settings", "export", "-o", exportPath)
	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("export not written: %v", err)
	}
	if !strings.Contains(string(data), "speed: 3") {
		t.Errorf("yaml export missing speed:\n%s", data)
	}
	runCmd(t, cliPath, env, "settings", "--reset")
	runCmd(t, cliPath, env, "settings", "import", exportPath)
	if out := runCmd(t, cliPath, env, "settings", "--list"); !strings.Contains(out, "Fade") {
		t.Errorf("import did not restore animation:\n%s", out)
	}

	t.Log("Snapping positions...")
	if out := strings.TrimSpace(runCmd(t, cliPath, env, "snap", "120", "140")); out != "100 150" {
		t.Errorf("snap 120 140 = %q, want \"100 150\"", out)
	}

	t.Log("Backing up...")
	runCmd(t, cliPath, env, "backup", "create")
	if out := runCmd(t, cliPath, env, "backup", "list"); !strings.Contains(out, "lumen-") {
		t.Errorf("backup list shows no backups:\n%s", out)
	}

	runCmd(t, cliPath, env, "assets")
	runCmd(t, cliPath, env, "migrate")
}

// lumenBinary returns LUMEN_BIN_DIR/lumen when set, otherwise builds one.
func lumenBinary(t *testing.T) string {
	t.Helper()
	if dir := os.Getenv("LUMEN_BIN_DIR"); dir != "" {
		path := filepath.Join(dir, "lumen")
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("CLI binary not found at %s: %v", path, err)
		}
		return path
	}

	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go toolchain not available to build the CLI")
	}
	path := filepath.Join(t.TempDir(), "lumen")
	build := exec.Command(goBin, "build", "-o", path, ".")
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("failed to build CLI: %v\n%s", err, out)
	}
	return path
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}
