package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/chronowall/chronowall/common"
)

// ConfigDir returns the directory holding config.toml and the pid file.
func ConfigDir() (string, error) {
	if d := os.Getenv(common.ConfigDirEnv); d != "" {
		return ExpandPath(d), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, common.AppName), nil
}

// StateDir returns the directory holding the log file, following
// XDG_STATE_HOME.
func StateDir() (string, error) {
	if d := os.Getenv(common.StateDirEnv); d != "" {
		return ExpandPath(d), nil
	}
	if d := os.Getenv("XDG_STATE_HOME"); d != "" {
		return filepath.Join(d, common.AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", common.AppName), nil
}

// DefaultPath returns the configuration file used when none is given.
func DefaultPath() (string, error) {
	if p := os.Getenv(common.ConfigEnv); p != "" {
		return ExpandPath(p), nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, common.ConfigFileName), nil
}

// ExpandPath expands a leading "~" and any $VAR or ${VAR} references.
// Unset variables expand to the empty string.
func ExpandPath(p string) string {
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
