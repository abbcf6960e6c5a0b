package watch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chronowall/chronowall/pkg/logger"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testDebounce = 20 * time.Millisecond

func startWatcher(t *testing.T, roots ...string) (*Watcher, *logger.MockLogger) {
	t.Helper()
	log := logger.NewMockLogger()
	w, err := New(log, testDebounce)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(roots...); err != nil {
		_ = w.Stop()
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() {
		if err := w.Stop(); err != nil {
			t.Errorf("Stop: %v", err)
		}
	})
	return w, log
}

func expectWake(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case <-w.Wake():
	case <-time.After(3 * time.Second):
		t.Fatal("no wake-up after a directory change")
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("img"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestWatcher_FileInRoot(t *testing.T) {
	root := t.TempDir()
	w, _ := startWatcher(t, root)

	touch(t, filepath.Join(root, "09.jpg"))
	expectWake(t, w)
}

func TestWatcher_FileInExistingGroup(t *testing.T) {
	root := t.TempDir()
	group := filepath.Join(root, "14")
	if err := os.Mkdir(group, 0o755); err != nil {
		t.Fatal(err)
	}
	w, _ := startWatcher(t, root)

	touch(t, filepath.Join(group, "a.png"))
	expectWake(t, w)
}

func TestWatcher_NewGroupIsWatched(t *testing.T) {
	root := t.TempDir()
	w, _ := startWatcher(t, root)

	group := filepath.Join(root, "20")
	if err := os.Mkdir(group, 0o755); err != nil {
		t.Fatal(err)
	}
	expectWake(t, w)

	touch(t, filepath.Join(group, "b.png"))
	expectWake(t, w)
}

func TestWatcher_BurstCoalesces(t *testing.T) {
	root := t.TempDir()
	w, _ := startWatcher(t, root)

	for _, name := range []string{"01.jpg", "02.jpg", "03.jpg", "04.jpg"} {
		touch(t, filepath.Join(root, name))
	}
	expectWake(t, w)
	select {
	case <-w.Wake():
		// A second wake is possible if the burst straddled the debounce
		// window, but never more than that.
		select {
		case <-w.Wake():
			t.Fatal("burst produced more than two wake-ups")
		case <-time.After(10 * testDebounce):
		}
	case <-time.After(10 * testDebounce):
	}
}

func TestWatcher_MissingRootSkipped(t *testing.T) {
	root := t.TempDir()
	_, log := startWatcher(t, filepath.Join(root, "special"), "", root)
	if !log.HasWarning("does not exist") {
		t.Errorf("warnings = %v", log.Warnings())
	}
}

func TestWatcher_StartTwice(t *testing.T) {
	root := t.TempDir()
	w, _ := startWatcher(t, root)
	if err := w.Start(root); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("err = %v, want ErrAlreadyRunning", err)
	}
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	w, err := New(logger.NewNopLogger(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("Stop: %v", err)
	}
	if w.debounce != DefaultDebounce {
		t.Errorf("debounce = %s", w.debounce)
	}
}
