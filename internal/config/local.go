package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/chronowall/chronowall/common"
	"github.com/chronowall/chronowall/internal/selection"
	"github.com/spf13/afero"
)

// localFile is the layout of <dir>/config.toml inside a group or special
// directory.
type localFile struct {
	General struct {
		SelectionStrategy *selection.Policy `toml:"selection_strategy"`
	} `toml:"general"`
}

// LocalPolicy reads the selection strategy override stored in dir. It returns
// (nil, nil) when there is no override file or the file does not set one.
// A file that cannot be read or parsed yields an error, which callers log and
// treat as no override.
func LocalPolicy(fsys afero.Fs, dir string) (*selection.Policy, error) {
	path := filepath.Join(dir, common.ConfigFileName)
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var lf localFile
	if _, err := toml.Decode(string(data), &lf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return lf.General.SelectionStrategy, nil
}
