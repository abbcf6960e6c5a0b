// Package daemon runs the wallpaper cycle loop and manages its lifecycle.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chronowall/chronowall/internal/backend"
	"github.com/chronowall/chronowall/internal/config"
	"github.com/chronowall/chronowall/internal/hook"
	"github.com/chronowall/chronowall/internal/scheduler"
	"github.com/chronowall/chronowall/internal/selection"
	"github.com/chronowall/chronowall/internal/watch"
	"github.com/chronowall/chronowall/pkg/logger"
	"github.com/spf13/afero"
)

// Sentinel errors for the daemon runner.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running daemon.
	ErrAlreadyRunning = errors.New("daemon is already running")

	// ErrNotRunning is returned when Shutdown() is called on a stopped daemon.
	ErrNotRunning = errors.New("daemon is not running")

	// ErrShutdownTimeout is returned when waiting for post-change commands
	// exceeds the configured timeout.
	ErrShutdownTimeout = errors.New("shutdown timed out")
)

// DefaultShutdownTimeout bounds how long shutdown waits for running
// post-change commands.
const DefaultShutdownTimeout = 5 * time.Second

// Config holds the configuration for the daemon runner.
type Config struct {
	// App is the loaded application configuration. Required.
	App *config.Config

	// ShutdownTimeout is the maximum time to wait for post-change commands
	// on shutdown. A zero value means DefaultShutdownTimeout.
	ShutdownTimeout time.Duration
}

// Watcher wakes the scheduler when the watched directories change.
type Watcher interface {
	Start(roots ...string) error
	Wake() <-chan struct{}
	Stop() error
}

// Dependencies holds the external dependencies for the daemon runner.
// This enables dependency injection for testing.
type Dependencies struct {
	// Fs is the filesystem the collections are read from.
	// If nil, the OS filesystem is used.
	Fs afero.Fs

	// Clock is the time source for scheduling.
	// If nil, the real clock is used.
	Clock scheduler.Clock

	// BackendFactory builds the presentation backend.
	// If nil, backend.New is used.
	BackendFactory func(name string, opts backend.Options) (backend.Backend, error)

	// Hook runs the post-change command. If nil, a hook.Hook is used.
	Hook PostHook

	// WatcherFactory creates the directory watcher used in watch mode.
	// If nil, watch.New is used.
	WatcherFactory func(l logger.Logger) (Watcher, error)

	// Chooser picks among several candidates.
	Chooser selection.Chooser

	// Logger receives daemon logs. If nil, a NopLogger is used.
	Logger logger.Logger
}

// Runner manages the daemon lifecycle.
type Runner struct {
	config  *Config
	deps    *Dependencies
	running bool
	mu      sync.Mutex
	cancel  context.CancelFunc
	watcher Watcher
}

// New creates a new daemon runner with the given configuration and dependencies.
// If deps is nil, default dependencies are used.
func New(config *Config, deps *Dependencies) *Runner {
	return &Runner{
		config: applyConfigDefaults(config),
		deps:   applyDependencyDefaults(deps),
	}
}

func applyConfigDefaults(cfg *Config) *Config {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	return cfg
}

func applyDependencyDefaults(deps *Dependencies) *Dependencies {
	if deps == nil {
		deps = &Dependencies{}
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Clock == nil {
		deps.Clock = scheduler.RealClock{}
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNopLogger()
	}
	if deps.BackendFactory == nil {
		deps.BackendFactory = backend.New
	}
	if deps.Hook == nil {
		deps.Hook = hook.New(deps.Logger)
	}
	if deps.WatcherFactory == nil {
		deps.WatcherFactory = func(l logger.Logger) (Watcher, error) {
			w, err := watch.New(l, watch.DefaultDebounce)
			if err != nil {
				return nil, err
			}
			return w, nil
		}
	}
	return deps
}

// Config returns the runner's configuration.
func (r *Runner) Config() *Config {
	return r.config
}

// Start initializes the backend and runs cycles until the context is
// canceled or a cycle fails. Returns ErrAlreadyRunning if the daemon is
// already started. Cancellation is a clean stop and returns nil.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return ErrAlreadyRunning
	}
	if r.config.App == nil {
		r.mu.Unlock()
		return errors.New("daemon: no configuration")
	}
	ctx, r.cancel = context.WithCancel(ctx)
	r.running = true
	r.mu.Unlock()
	defer r.cleanupOnStop()

	orch, err := r.prepare(ctx, r.config.App.General.Watch)
	if err != nil {
		return err
	}
	return orch.Run(ctx)
}

// Once runs a single cycle without scheduling and waits for the post-change
// command to finish.
func (r *Runner) Once(ctx context.Context) (Pick, error) {
	if r.config.App == nil {
		return Pick{}, errors.New("daemon: no configuration")
	}
	orch, err := r.prepare(ctx, false)
	if err != nil {
		return Pick{}, err
	}
	pick, err := orch.RunCycle(ctx)
	if werr := r.executeWithTimeout(r.deps.Hook.Wait, r.config.ShutdownTimeout); werr != nil {
		r.deps.Logger.Warning("post command still running at exit")
	}
	return pick, err
}

// prepare builds and initializes the backend, starts the watcher when
// watching and returns a ready Orchestrator.
func (r *Runner) prepare(ctx context.Context, watching bool) (*Orchestrator, error) {
	app := r.config.App
	log := r.deps.Logger

	b, err := r.deps.BackendFactory(app.General.Backend, backend.Options{Args: app.General.BackendArgs})
	if err != nil {
		return nil, err
	}
	log.Info("initializing backend %s", b.Name())
	if err := b.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}

	var wake <-chan struct{}
	if watching {
		w, err := r.startWatcher(app)
		if err != nil {
			log.Warning("watch mode disabled: %v", err)
		} else {
			wake = w.Wake()
		}
	}

	return NewOrchestrator(app, OrchestratorDeps{
		Fs:      r.deps.Fs,
		Backend: b,
		Clock:   r.deps.Clock,
		Wake:    wake,
		Chooser: r.deps.Chooser,
		Hook:    r.deps.Hook,
		Logger:  log,
	}), nil
}

func (r *Runner) startWatcher(app *config.Config) (Watcher, error) {
	w, err := r.deps.WatcherFactory(r.deps.Logger)
	if err != nil {
		return nil, err
	}
	roots := []string{app.Directories.Wallpaper}
	if app.General.EnableSpecial {
		roots = append(roots, app.Directories.Special)
	}
	if err := w.Start(roots...); err != nil {
		_ = w.Stop()
		return nil, err
	}
	r.mu.Lock()
	r.watcher = w
	r.mu.Unlock()
	return w, nil
}

// cleanupOnStop performs cleanup when the daemon stops.
func (r *Runner) cleanupOnStop() {
	r.mu.Lock()
	r.running = false
	if r.cancel != nil {
		r.cancel()
	}
	w := r.watcher
	r.watcher = nil
	r.mu.Unlock()

	if w != nil {
		if err := w.Stop(); err != nil {
			r.deps.Logger.Warning("stopping watcher: %v", err)
		}
	}
	if err := r.executeWithTimeout(r.deps.Hook.Wait, r.config.ShutdownTimeout); err != nil {
		r.deps.Logger.Warning("post command still running at exit")
	}
}

// Shutdown stops a running daemon.
// Returns ErrNotRunning if the daemon is not running.
func (r *Runner) Shutdown() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return ErrNotRunning
	}
	r.cancel()
	return nil
}

// executeWithTimeout runs fn with a timeout.
// Returns ErrShutdownTimeout if fn does not return in time.
func (r *Runner) executeWithTimeout(fn func(), timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		fn()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return ErrShutdownTimeout
	}
}

// IsRunning returns true if the daemon is currently running.
func (r *Runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}
