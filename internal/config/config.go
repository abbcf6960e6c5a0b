// Package config loads the chronowall configuration.
//
// The embedded default.toml is decoded first and the user's file is decoded
// on top of it, so a user file only needs the keys it changes.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adhocore/gronx"
	"github.com/chronowall/chronowall/common"
	"github.com/chronowall/chronowall/internal/index"
	"github.com/chronowall/chronowall/internal/selection"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
)

//go:embed default.toml
var defaultConfig string

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the fully resolved configuration.
type Config struct {
	General     General     `toml:"general"`
	Directories Directories `toml:"directories"`
	// SpecialEntries maps an hour ("9", "09") or a cron expression to the
	// name of an entry in the special directory.
	SpecialEntries map[string]string `toml:"special_entries"`
}

type General struct {
	Backend                string           `toml:"backend"`
	EnableSpecial          bool             `toml:"enable_special"`
	GroupSelectionStrategy selection.Policy `toml:"group_selection_strategy"`
	ExecuteOnChange        string           `toml:"execute_on_change"`
	// BackendArgs replaces the backend's default apply arguments when set.
	BackendArgs []string `toml:"backend_args"`
	Watch       bool     `toml:"watch"`
}

type Directories struct {
	Wallpaper   string `toml:"wallpaper"`
	Special     string `toml:"special"`
	Collections string `toml:"collections"`
}

// Load reads path from fsys on top of the defaults. A missing file is not an
// error unless required is set; the defaults are returned instead.
func Load(fsys afero.Fs, path string, required bool) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.Decode(defaultConfig, cfg); err != nil {
		return nil, fmt.Errorf("embedded default.toml: %w", err)
	}
	data, err := afero.ReadFile(fsys, path)
	switch {
	case err == nil:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !required:
	default:
		return nil, err
	}
	if b := os.Getenv(common.BackendEnv); b != "" {
		cfg.General.Backend = b
	}
	cfg.resolve()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolve fills the derived directory defaults and expands every path.
func (c *Config) resolve() {
	if c.Directories.Special == "" {
		c.Directories.Special = filepath.Join(c.Directories.Wallpaper, "special")
	}
	if c.Directories.Collections == "" {
		c.Directories.Collections = c.Directories.Wallpaper
	}
	c.Directories.Wallpaper = ExpandPath(c.Directories.Wallpaper)
	c.Directories.Special = ExpandPath(c.Directories.Special)
	c.Directories.Collections = ExpandPath(c.Directories.Collections)
	c.General.Backend = strings.ToLower(strings.TrimSpace(c.General.Backend))
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	if c.General.Backend == "" {
		result = multierror.Append(result, fmt.Errorf("%w: general.backend is empty", ErrInvalid))
	}
	if c.Directories.Wallpaper == "" {
		result = multierror.Append(result, fmt.Errorf("%w: directories.wallpaper is empty", ErrInvalid))
	}
	for _, key := range c.specialKeys() {
		if strings.TrimSpace(c.SpecialEntries[key]) == "" {
			result = multierror.Append(result, fmt.Errorf("%w: special_entries[%q] names nothing", ErrInvalid, key))
		}
		if _, ok := index.ParseHour(key); ok {
			continue
		}
		if err := validateCron(key); err != nil {
			result = multierror.Append(result, fmt.Errorf("%w: special_entries: %v", ErrInvalid, err))
		}
	}
	return result.ErrorOrNil()
}

// validateCron accepts only 5-field expressions; gronx alone also takes a
// seconds field.
func validateCron(expr string) error {
	if len(strings.Fields(expr)) != 5 || !gronx.IsValid(expr) {
		return fmt.Errorf("%q is neither an hour (0-23) nor a 5-field cron expression", expr)
	}
	return nil
}

func (c *Config) specialKeys() []string {
	keys := make([]string, 0, len(c.SpecialEntries))
	for k := range c.SpecialEntries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SpecialName returns the special entry name active at now.
//
// Cron keys are consulted first, in sorted order: one is active when its most
// recent tick at or before now falls within now's hour. Then the hour keys
// are matched against now.Hour().
func (c *Config) SpecialName(now time.Time) (string, bool) {
	keys := c.specialKeys()
	for _, key := range keys {
		if _, ok := index.ParseHour(key); ok {
			continue
		}
		prev, err := gronx.PrevTickBefore(key, now, true)
		if err != nil {
			continue
		}
		if sameHour(prev, now) {
			return c.SpecialEntries[key], true
		}
	}
	for _, key := range keys {
		if h, ok := index.ParseHour(key); ok && h == now.Hour() {
			return c.SpecialEntries[key], true
		}
	}
	return "", false
}

func sameHour(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay() && a.Hour() == b.Hour()
}

