// Package selection turns the items of the active bucket into one wallpaper
// path.
package selection

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/chronowall/chronowall/internal/scheduler"
)

// Policy decides how one path is picked out of several candidates.
type Policy int

const (
	// Spread divides the refresh interval evenly between the candidates and
	// shows each for its slice.
	Spread Policy = iota
	// Random picks a candidate uniformly at random.
	Random
)

// ErrUnknownPolicy is returned by ParsePolicy for unrecognised names.
var ErrUnknownPolicy = errors.New("unknown selection strategy")

// ErrNoCandidates is returned by Choose for an empty candidate list.
var ErrNoCandidates = errors.New("no candidates to choose from")

func (p Policy) String() string {
	switch p {
	case Spread:
		return "spread"
	case Random:
		return "random"
	default:
		return "unknown"
	}
}

// ParsePolicy parses "spread" or "random", ignoring case and surrounding
// space.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spread":
		return Spread, nil
	case "random":
		return Random, nil
	}
	return Spread, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// UnmarshalText lets Policy be decoded straight from configuration files.
func (p *Policy) UnmarshalText(text []byte) error {
	v, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Decision is the outcome of applying a policy to a candidate list.
type Decision struct {
	Path  string
	Index int
	// IntervalMinutes and Strategy are what the rest of the cycle must use.
	// Only Spread changes them.
	IntervalMinutes float64
	Strategy        scheduler.WaitStrategy
	// Oversubscribed is set when Spread had more candidates than the
	// interval has minutes, so every slice is shorter than a minute.
	Oversubscribed bool
}

// Chooser applies a Policy. The zero value uses math/rand/v2.
type Chooser struct {
	// IntN returns a value in [0, n). Tests replace it.
	IntN func(n int) int
}

// Choose picks one of paths. A single candidate is returned unchanged and
// leaves interval and strategy alone, whatever the policy.
func (c Chooser) Choose(paths []string, policy Policy, intervalMinutes float64, strategy scheduler.WaitStrategy, now time.Time) (Decision, error) {
	d := Decision{IntervalMinutes: intervalMinutes, Strategy: strategy}
	switch n := len(paths); {
	case n == 0:
		return d, ErrNoCandidates
	case n == 1:
		d.Path = paths[0]
		return d, nil
	case policy == Random:
		d.Index = c.intN(n)
	default:
		d.Index = SliceIndex(n, intervalMinutes, now)
		d.IntervalMinutes = intervalMinutes / float64(n)
		d.Strategy = scheduler.PlainSleep
		d.Oversubscribed = float64(n) > intervalMinutes
	}
	d.Path = paths[d.Index]
	return d, nil
}

func (c Chooser) intN(n int) int {
	if c.IntN != nil {
		return c.IntN(n)
	}
	return rand.IntN(n)
}

// SliceIndex returns which of n equal slices of intervalMinutes the current
// second of the hour falls into, clamped to n-1.
func SliceIndex(n int, intervalMinutes float64, now time.Time) int {
	if n <= 1 || intervalMinutes <= 0 {
		return 0
	}
	slice := intervalMinutes * 60 / float64(n)
	secs := float64(now.Minute()*60 + now.Second())
	idx := int(math.Floor(secs / slice))
	if idx > n-1 {
		idx = n - 1
	}
	return idx
}
