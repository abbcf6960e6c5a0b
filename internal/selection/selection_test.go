package selection

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/chronowall/chronowall/internal/index"
	"github.com/chronowall/chronowall/internal/scheduler"
	"github.com/spf13/afero"
)

var exts = index.NewExtensionSet("jpg", "png")

func minute(m, s int) time.Time {
	return time.Date(2025, 6, 1, 14, m, s, 0, time.Local)
}

func writeFiles(t *testing.T, fsys afero.Fs, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if err := afero.WriteFile(fsys, p, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
}

func TestResolve_GroupExpandsSorted(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, "/wp/14/c.jpg", "/wp/14/a.jpg", "/wp/14/b.png", "/wp/14.jpg")

	res := Resolve(fsys, []index.Item{index.Group("/wp/14"), index.Entry("/wp/14.jpg")}, exts)
	want := []string{"/wp/14/a.jpg", "/wp/14/b.png", "/wp/14/c.jpg"}
	if !reflect.DeepEqual(res.Paths, want) {
		t.Errorf("paths = %v, want %v", res.Paths, want)
	}
	if res.Source != index.Group("/wp/14") {
		t.Errorf("source = %+v", res.Source)
	}
}

func TestResolve_EmptyGroupFallsThrough(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll("/wp/09", 0o755); err != nil {
		t.Fatal(err)
	}
	writeFiles(t, fsys, "/wp/09.jpg")

	res := Resolve(fsys, []index.Item{index.Group("/wp/09"), index.Entry("/wp/09.jpg")}, exts)
	if !reflect.DeepEqual(res.Paths, []string{"/wp/09.jpg"}) {
		t.Errorf("paths = %v, want the entry", res.Paths)
	}
	if len(res.Skipped) != 1 || !errors.Is(res.Skipped[0], index.ErrGroupEmpty) {
		t.Errorf("skipped = %v, want one ErrGroupEmpty", res.Skipped)
	}
}

func TestResolve_NothingAvailable(t *testing.T) {
	fsys := afero.NewMemMapFs()
	res := Resolve(fsys, []index.Item{index.Group("/missing")}, exts)
	if !res.Empty() {
		t.Errorf("expected empty resolution, got %v", res.Paths)
	}
	if res := Resolve(fsys, nil, exts); !res.Empty() {
		t.Error("nil items must resolve to nothing")
	}
}

func TestSliceIndex(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		interval float64
		now      time.Time
		want     int
	}{
		{"five items at minute 37", 5, 60, minute(37, 0), 3},
		{"first slice", 5, 60, minute(0, 0), 0},
		{"just before a slice edge", 5, 60, minute(11, 59), 0},
		{"on a slice edge", 5, 60, minute(12, 0), 1},
		{"last second", 5, 60, minute(59, 59), 4},
		{"clamped past the interval", 2, 30, minute(45, 0), 1},
		{"more items than minutes", 120, 60, minute(0, 45), 1},
		{"single item", 1, 60, minute(30, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SliceIndex(tt.n, tt.interval, tt.now); got != tt.want {
				t.Errorf("SliceIndex = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSliceIndex_Monotonic(t *testing.T) {
	for _, n := range []int{2, 3, 5, 7, 60} {
		prev := 0
		for sec := 0; sec < 3600; sec++ {
			now := minute(0, 0).Add(time.Duration(sec) * time.Second)
			idx := SliceIndex(n, 60, now)
			if idx < prev || idx > n-1 {
				t.Fatalf("n=%d at %s: index %d after %d", n, now.Format("04:05"), idx, prev)
			}
			prev = idx
		}
	}
}

func TestChoose(t *testing.T) {
	paths := []string{"a", "b", "c", "d", "e"}

	t.Run("spread shortens the interval", func(t *testing.T) {
		d, err := Chooser{}.Choose(paths, Spread, 60, scheduler.AdaptiveHalving, minute(37, 0))
		if err != nil {
			t.Fatal(err)
		}
		if d.Path != "d" || d.Index != 3 {
			t.Errorf("picked %s (%d), want d (3)", d.Path, d.Index)
		}
		if d.IntervalMinutes != 12 || d.Strategy != scheduler.PlainSleep {
			t.Errorf("interval %v strategy %s, want 12 plain-sleep", d.IntervalMinutes, d.Strategy)
		}
		if d.Oversubscribed {
			t.Error("five items in an hour are not oversubscribed")
		}
	})

	t.Run("random keeps interval and strategy", func(t *testing.T) {
		c := Chooser{IntN: func(n int) int {
			if n != 5 {
				t.Errorf("IntN(%d), want 5", n)
			}
			return 4
		}}
		d, err := c.Choose(paths, Random, 60, scheduler.AdaptiveHalving, minute(0, 0))
		if err != nil {
			t.Fatal(err)
		}
		if d.Path != "e" || d.IntervalMinutes != 60 || d.Strategy != scheduler.AdaptiveHalving {
			t.Errorf("decision = %+v", d)
		}
	})

	t.Run("default random source stays in range", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			d, err := Chooser{}.Choose(paths, Random, 60, scheduler.AdaptiveHalving, minute(0, 0))
			if err != nil || d.Index < 0 || d.Index >= len(paths) || paths[d.Index] != d.Path {
				t.Fatalf("decision = %+v, err = %v", d, err)
			}
		}
	})

	t.Run("single candidate is fixed", func(t *testing.T) {
		d, err := Chooser{}.Choose([]string{"only"}, Spread, 60, scheduler.AdaptiveHalving, minute(37, 0))
		if err != nil {
			t.Fatal(err)
		}
		if d.Path != "only" || d.IntervalMinutes != 60 || d.Strategy != scheduler.AdaptiveHalving {
			t.Errorf("decision = %+v", d)
		}
	})

	t.Run("oversubscribed spread still selects", func(t *testing.T) {
		many := make([]string, 90)
		for i := range many {
			many[i] = string(rune('A' + i%26))
		}
		d, err := Chooser{}.Choose(many, Spread, 60, scheduler.AdaptiveHalving, minute(30, 0))
		if err != nil {
			t.Fatal(err)
		}
		if !d.Oversubscribed || d.Index != 45 {
			t.Errorf("decision = %+v", d)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if _, err := (Chooser{}).Choose(nil, Spread, 60, scheduler.AdaptiveHalving, minute(0, 0)); !errors.Is(err, ErrNoCandidates) {
			t.Errorf("err = %v, want ErrNoCandidates", err)
		}
	})
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"spread", Spread, false},
		{" Random ", Random, false},
		{"T/2", Spread, true},
		{"", Spread, true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePolicy(%q) = (%s, %v)", tt.in, got, err)
		}
		if err != nil && !errors.Is(err, ErrUnknownPolicy) {
			t.Errorf("ParsePolicy(%q) error %v does not wrap ErrUnknownPolicy", tt.in, err)
		}
	}

	var p Policy
	if err := p.UnmarshalText([]byte("random")); err != nil || p != Random {
		t.Errorf("UnmarshalText = (%s, %v)", p, err)
	}
}
