package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/lumen/internal/constants"
	"github.com/julianstephens/lumen/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// ErrAlreadyRunning is returned when another live screensaver holds the lock
var ErrAlreadyRunning = errors.New("another lumen screensaver is already running")

// Lock is a PID lockfile guarding the interactive screensaver
type Lock struct {
	path string
}

// Path returns the lockfile location inside configDir
func Path(configDir string) string {
	return filepath.Join(configDir, constants.LockfileName)
}

// Acquire writes the current PID to the lockfile. A lockfile left behind by a
// process that no longer exists is taken over.
func Acquire(configDir string) (*Lock, error) {
	path := Path(configDir)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if pid, running, err := Holder(configDir); err == nil && running {
		return nil, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
	} else if err == nil {
		logger.Debug("Taking over stale lockfile", "path", path, "pid", pid)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(strconv.Itoa(getpidFunc())+"\n"), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path}, nil
}

// Holder reads the lockfile and reports the PID in it and whether that
// process is still alive. os.ErrNotExist is returned when there is no lock.
func Holder(configDir string) (int, bool, error) {
	content, err := os.ReadFile(Path(configDir))
	if err != nil {
		return 0, false, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil {
		return 0, false, fmt.Errorf("invalid process ID in lockfile: %w", err)
	}
	if pid == getpidFunc() {
		return pid, false, nil
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return pid, false, nil
	}
	return pid, true, nil
}

// Release removes the lockfile if it still belongs to this process.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	content, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if strings.TrimSpace(string(content)) != strconv.Itoa(getpidFunc()) {
		return nil
	}
	return os.Remove(l.path)
}
