package cmd

import (
	"os"
	"path/filepath"

	cwcommon "github.com/chronowall/chronowall/common"
	"github.com/chronowall/chronowall/internal/config"
	"github.com/chronowall/chronowall/pkg/logger"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/urfave/cli"
)

var (
	// osFs is swapped in tests.
	osFs afero.Fs = afero.NewOsFs()

	isTerminal = func() bool {
		fd := os.Stdout.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
)

// loadConfig loads the file named by --config, or the default location.
// An explicitly named file must exist.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	path := ctx.GlobalString("config")
	required := path != ""
	if !required {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return config.Load(osFs, config.ExpandPath(path), required)
}

// newLogger logs to the rotating file in the state directory. With --debug,
// or in the foreground on a terminal, it logs to stdout as well.
func newLogger(ctx *cli.Context, foreground bool) logger.Logger {
	console := ctx.GlobalBool("debug") || (foreground && isTerminal())

	dir, err := config.StateDir()
	if err != nil {
		return logger.NewConsoleLogger()
	}
	file, err := logger.NewFileLogger(filepath.Join(dir, cwcommon.LogFileName), logger.FileOptions{})
	if err != nil {
		l := logger.NewConsoleLogger()
		l.Warning("file logging disabled: %v", err)
		return l
	}
	if console {
		return logger.NewMultiLogger(file, logger.NewConsoleLogger())
	}
	return file
}

func pidFilePath() (string, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, cwcommon.PidFileName), nil
}
