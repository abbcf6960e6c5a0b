package daemon

import (
	"context"
	"sync"
	"time"

	"github.com/chronowall/chronowall/internal/index"
)

type fakeBackend struct {
	mu       sync.Mutex
	applied  []string
	inits    int
	initErr  error
	applyErr error
	onApply  func(path string)
	// ctxErrs records ctx.Err() as seen by each Apply call.
	ctxErrs []error
}

func (*fakeBackend) Name() string { return "fake" }

func (b *fakeBackend) Initialize(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inits++
	return b.initErr
}

func (b *fakeBackend) Apply(ctx context.Context, path string) error {
	b.mu.Lock()
	b.ctxErrs = append(b.ctxErrs, ctx.Err())
	if b.applyErr != nil {
		b.mu.Unlock()
		return b.applyErr
	}
	b.applied = append(b.applied, path)
	cb := b.onApply
	b.mu.Unlock()
	if cb != nil {
		cb(path)
	}
	return nil
}

func (*fakeBackend) SupportedExtensions() index.ExtensionSet {
	return index.NewExtensionSet("jpg", "png")
}

func (b *fakeBackend) ApplyCtxErrs() []error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]error(nil), b.ctxErrs...)
}

func (b *fakeBackend) Applied() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.applied...)
}

type fired struct{ command, wallpaper string }

type fakeHook struct {
	mu      sync.Mutex
	fired   []fired
	waits   int
	fireErr error
}

func (h *fakeHook) Fire(command, wallpaper string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fired = append(h.fired, fired{command, wallpaper})
	return h.fireErr
}

func (h *fakeHook) Wait() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.waits++
}

func (h *fakeHook) Fired() []fired {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]fired(nil), h.fired...)
}

type fakeWatcher struct {
	mu      sync.Mutex
	roots   []string
	stopped bool
	wake    chan struct{}
}

func newFakeWatcher() *fakeWatcher { return &fakeWatcher{wake: make(chan struct{}, 1)} }

func (w *fakeWatcher) Start(roots ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.roots = roots
	return nil
}

func (w *fakeWatcher) Wake() <-chan struct{} { return w.wake }

func (w *fakeWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	return nil
}

func (w *fakeWatcher) Stopped() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopped
}

// blockingClock never fires, so a scheduler wait only ends through ctx or
// a wake-up.
type blockingClock struct{ now time.Time }

func (c blockingClock) Now() time.Time                    { return c.now }
func (blockingClock) After(time.Duration) <-chan time.Time { return nil }
