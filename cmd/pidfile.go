package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// errInstanceRunning is returned by claimPidFile when another instance
// holds the pid file.
var errInstanceRunning = errors.New("another instance is already running")

// writePidFile records the current process ID at path.
func writePidFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0644)
}

// readPidFile reads and returns the PID stored at path.
func readPidFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in file: %w", err)
	}
	if pid <= 0 {
		return 0, fmt.Errorf("invalid PID: %d", pid)
	}
	return pid, nil
}

// removePidFile removes the pid file. A missing file is not an error.
func removePidFile(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// claimPidFile writes the pid file unless a live process other than this
// one is recorded there. Stale files are overwritten.
func claimPidFile(path string) error {
	pid, err := readPidFile(path)
	if err == nil && pid != os.Getpid() && isProcessRunning(pid) {
		return fmt.Errorf("%w (PID %d)", errInstanceRunning, pid)
	}
	return writePidFile(path)
}
