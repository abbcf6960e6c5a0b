// Package watch wakes the daemon early when a wallpaper directory changes.
package watch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chronowall/chronowall/pkg/logger"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses a burst of events, such as copying a folder of
// images, into one wake-up.
const DefaultDebounce = 500 * time.Millisecond

// ErrAlreadyRunning is returned by Start on a running Watcher.
var ErrAlreadyRunning = errors.New("watcher already running")

// Watcher watches a set of directories and their immediate subdirectories.
type Watcher struct {
	watcher  *fsnotify.Watcher
	log      logger.Logger
	debounce time.Duration

	wake chan struct{}
	done chan struct{}
	wg   sync.WaitGroup

	mu      sync.Mutex
	running bool
}

// New creates a Watcher. A debounce of zero uses DefaultDebounce.
func New(l logger.Logger, debounce time.Duration) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		watcher:  w,
		log:      l,
		debounce: debounce,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Wake returns the channel that receives once per settled burst of
// changes. Pending wake-ups coalesce.
func (w *Watcher) Wake() <-chan struct{} {
	return w.wake
}

// Start watches every existing directory in roots along with its direct
// subdirectories. Roots that do not exist are skipped.
func (w *Watcher) Start(roots ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return ErrAlreadyRunning
	}
	for _, root := range roots {
		if root == "" {
			continue
		}
		if _, err := os.Stat(root); errors.Is(err, os.ErrNotExist) {
			w.log.Warning("watch: %s does not exist, skipping", root)
			continue
		}
		if err := w.addTree(root); err != nil {
			return err
		}
	}
	w.running = true
	w.wg.Add(1)
	go w.loop()
	return nil
}

func (w *Watcher) addTree(root string) error {
	if err := w.watcher.Add(root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", root, err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sub := filepath.Join(root, e.Name())
		if err := w.watcher.Add(sub); err != nil {
			w.log.Warning("watch: %s: %v", sub, err)
		}
	}
	return nil
}

// Stop ends watching and blocks until the event goroutine has exited.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return w.watcher.Close()
	}
	w.running = false
	w.mu.Unlock()

	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	if err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := w.watcher.Add(ev.Name); err != nil {
						w.log.Warning("watch: %s: %v", ev.Name, err)
					}
				}
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warning("watch: %v", err)

		case <-timer.C:
			select {
			case w.wake <- struct{}{}:
			default:
			}
		}
	}
}
