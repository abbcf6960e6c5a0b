// Package backend hands the chosen wallpaper to an external program.
package backend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/chronowall/chronowall/internal/index"
)

var (
	// ErrUnknownBackend is returned by New for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown backend")
	// ErrUnavailable is returned by Initialize when the backend program
	// could not be reached.
	ErrUnavailable = errors.New("backend is not installed or not running")
	// ErrApplyFailed is returned when the backend program could not be
	// started or exited non-zero.
	ErrApplyFailed = errors.New("failed to apply wallpaper")
)

// Backend presents images.
type Backend interface {
	Name() string
	// Initialize makes sure the backend is usable. It may retry for a bounded
	// number of attempts.
	Initialize(ctx context.Context) error
	Apply(ctx context.Context, path string) error
	SupportedExtensions() index.ExtensionSet
}

// Options configures a backend built by New.
type Options struct {
	// Args replaces the backend's default apply arguments when non-nil.
	Args []string
	// Runner executes the backend program. Defaults to ExecRunner.
	Runner Runner
	// Sleep waits between initialization attempts. Defaults to a
	// context-aware sleep.
	Sleep func(ctx context.Context, d time.Duration) error
}

func (o Options) withDefaults() Options {
	if o.Runner == nil {
		o.Runner = ExecRunner{Timeout: DefaultCommandTimeout}
	}
	if o.Sleep == nil {
		o.Sleep = sleepContext
	}
	return o
}

type factory func(Options) Backend

var registry = map[string]factory{
	"swww": func(o Options) Backend { return newSwww(o) },
	"feh":  func(o Options) Backend { return newFeh(o) },
}

// New returns the backend registered under name.
func New(name string, opts Options) (Backend, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownBackend, name, Names())
	}
	return f(opts.withDefaults()), nil
}

// Names lists the registered backends.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
