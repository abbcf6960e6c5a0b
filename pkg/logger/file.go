package logger

import (
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults for the daemon log file.
const (
	DefaultMaxSizeMB  = 5
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 28
)

// FileOptions controls log file rotation. Zero values fall back to the
// package defaults.
type FileOptions struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// NewFileLogger creates a StandardLogger that appends to path, rotating the
// file once it grows past the configured size. The parent directory is
// created if missing.
func NewFileLogger(path string, opts FileOptions) (*StandardLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = DefaultMaxSizeMB
	}
	if opts.MaxBackups <= 0 {
		opts.MaxBackups = DefaultMaxBackups
	}
	if opts.MaxAgeDays <= 0 {
		opts.MaxAgeDays = DefaultMaxAgeDays
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}
	return &StandardLogger{
		logger: log.New(w, "", log.LstdFlags),
		closer: w,
	}, nil
}

// NewConsoleLogger creates a StandardLogger writing to stdout.
func NewConsoleLogger() *StandardLogger {
	return NewStandardLogger(log.New(os.Stdout, "", log.LstdFlags))
}
