package scheduler

import "time"

// DefaultIntervalMinutes is the refresh window every cycle starts from.
const DefaultIntervalMinutes = 60.0

// WaitStrategy selects how a Plan is waited out.
type WaitStrategy int

const (
	// AdaptiveHalving sleeps in halving steps, re-validating the boundary
	// after every wake-up.
	AdaptiveHalving WaitStrategy = iota
	// PlainSleep sleeps once for the whole duration.
	PlainSleep
)

func (w WaitStrategy) String() string {
	switch w {
	case AdaptiveHalving:
		return "adaptive-halving"
	case PlainSleep:
		return "plain-sleep"
	default:
		return "unknown"
	}
}

// State is a step of the adaptive halving state machine.
type State int

const (
	StateHalving State = iota
	StateSettling
	StateDone
)

func (s State) String() string {
	switch s {
	case StateHalving:
		return "halving"
	case StateSettling:
		return "settling"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Outcome reports why a wait ended.
type Outcome int

const (
	// OutcomeElapsed means the target boundary was reached.
	OutcomeElapsed Outcome = iota
	// OutcomeRollover means the wall-clock hour changed while waiting.
	OutcomeRollover
	// OutcomeWoken means an external wake-up (e.g. a directory change) ended the wait early.
	OutcomeWoken
)

func (o Outcome) String() string {
	switch o {
	case OutcomeElapsed:
		return "elapsed"
	case OutcomeRollover:
		return "rollover"
	case OutcomeWoken:
		return "woken"
	default:
		return "unknown"
	}
}

// Plan is everything a single wait needs. It is built fresh every cycle.
type Plan struct {
	// IntervalMinutes is the refresh window used to re-validate the boundary.
	IntervalMinutes float64
	// Strategy picks PlainSleep or AdaptiveHalving.
	Strategy WaitStrategy
	// StartedAt is the instant the cycle began; an hour change relative to it
	// ends an adaptive wait immediately.
	StartedAt time.Time
	// WaitSeconds is the initial wait, normally WaitSeconds(IntervalMinutes, now).
	WaitSeconds int64
}
