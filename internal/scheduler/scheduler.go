package scheduler

import (
	"context"
	"errors"
	"time"
)

// errWoken signals that a sleep ended because of the wake channel.
var errWoken = errors.New("woken")

// settleDuration is the final sleep once the remaining wait is one second.
const settleDuration = time.Second

// Scheduler waits out a Plan. Sleeps end early when ctx is cancelled or when
// the optional wake channel fires.
type Scheduler struct {
	clock Clock
	wake  <-chan struct{}
}

// New creates a Scheduler. A nil clock means RealClock; a nil wake channel
// never fires.
func New(clock Clock, wake <-chan struct{}) *Scheduler {
	if clock == nil {
		clock = RealClock{}
	}
	return &Scheduler{clock: clock, wake: wake}
}

// Wait blocks according to p.Strategy. It returns ctx.Err() if the context is
// cancelled before or between sleep steps.
func (s *Scheduler) Wait(ctx context.Context, p Plan) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return OutcomeElapsed, err
	}
	if p.IntervalMinutes <= 0 {
		p.IntervalMinutes = DefaultIntervalMinutes
	}
	if p.Strategy == PlainSleep {
		return s.plain(ctx, p)
	}
	return s.halve(ctx, p)
}

func (s *Scheduler) plain(ctx context.Context, p Plan) (Outcome, error) {
	if err := s.sleep(ctx, seconds(p.WaitSeconds)); err != nil {
		return s.interrupted(err)
	}
	return OutcomeElapsed, nil
}

// halve runs the adaptive halving state machine. Before every step the
// boundary is recomputed from the wall clock: a changed hour ends the wait at
// once and a smaller fresh estimate replaces the running one. remaining then
// shrinks by half.
func (s *Scheduler) halve(ctx context.Context, p Plan) (Outcome, error) {
	remaining := p.WaitSeconds
	best := remaining
	state := StateHalving

	for {
		switch state {
		case StateHalving:
			rolledOver, fresh := Recompute(p.IntervalMinutes, p.StartedAt, s.clock.Now())
			if rolledOver {
				return OutcomeRollover, nil
			}
			if fresh < best {
				best = fresh
				remaining = fresh
			}
			if remaining <= 1 {
				state = StateSettling
				continue
			}
			remaining /= 2
			if remaining < 2 {
				remaining = 1
			}
			if err := s.sleep(ctx, seconds(remaining)); err != nil {
				return s.interrupted(err)
			}

		case StateSettling:
			if err := s.sleep(ctx, settleDuration); err != nil {
				return s.interrupted(err)
			}
			state = StateDone

		case StateDone:
			return OutcomeElapsed, nil
		}
	}
}

// sleep checks for cancellation immediately before and after the sleep and
// also returns early if the context or the wake channel fire mid-sleep.
func (s *Scheduler) sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.wake:
		return errWoken
	case <-s.clock.After(d):
	}
	return ctx.Err()
}

func (s *Scheduler) interrupted(err error) (Outcome, error) {
	if errors.Is(err, errWoken) {
		return OutcomeWoken, nil
	}
	return OutcomeElapsed, err
}
