package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/chronowall/chronowall/internal/backend"
	"github.com/chronowall/chronowall/internal/config"
	"github.com/chronowall/chronowall/internal/index"
	"github.com/chronowall/chronowall/internal/scheduler"
	"github.com/chronowall/chronowall/internal/selection"
	"github.com/chronowall/chronowall/pkg/logger"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
)

// Origin names the collection a pick came from.
type Origin string

const (
	OriginNone    Origin = ""
	OriginSpecial Origin = "special"
	OriginMain    Origin = "main"
)

// PostHook runs the post-change command. Fire reports only a failure to
// start the command.
type PostHook interface {
	Fire(command, wallpaper string) error
	Wait()
}

// Pick is what one cycle decided, before anything is applied.
type Pick struct {
	Origin Origin
	// Bucket is the hour ("09") or special name that was used.
	Bucket string
	// Path is empty when nothing is available this cycle.
	Path       string
	Candidates int
	Policy     selection.Policy
	Plan       scheduler.Plan
	// HookErr is set when the post-change command could not be started. It
	// never fails the cycle.
	HookErr error
}

// Orchestrator runs resolve, apply and wait cycles.
type Orchestrator struct {
	cfg     *config.Config
	fs      afero.Fs
	backend backend.Backend
	exts    index.ExtensionSet
	clock   scheduler.Clock
	sched   *scheduler.Scheduler
	chooser selection.Chooser
	hook    PostHook
	log     logger.Logger
}

// OrchestratorDeps are the collaborators of an Orchestrator. Fs, Clock,
// Hook and Logger default to the OS filesystem, the real clock, no hook and
// a NopLogger.
type OrchestratorDeps struct {
	Fs      afero.Fs
	Backend backend.Backend
	Clock   scheduler.Clock
	// Wake ends a scheduler wait early; nil never fires.
	Wake    <-chan struct{}
	Chooser selection.Chooser
	Hook    PostHook
	Logger  logger.Logger
}

// NewOrchestrator wires an Orchestrator. Backend is required.
func NewOrchestrator(cfg *config.Config, deps OrchestratorDeps) *Orchestrator {
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Clock == nil {
		deps.Clock = scheduler.RealClock{}
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNopLogger()
	}
	return &Orchestrator{
		cfg:     cfg,
		fs:      deps.Fs,
		backend: deps.Backend,
		exts:    deps.Backend.SupportedExtensions(),
		clock:   deps.Clock,
		sched:   scheduler.New(deps.Clock, deps.Wake),
		chooser: deps.Chooser,
		hook:    deps.Hook,
		log:     deps.Logger,
	}
}

// Run loops until ctx is cancelled or a cycle fails. Cancellation is not an
// error.
func (o *Orchestrator) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		pick, err := o.RunCycle(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		o.log.Info("next check in %s (%s, %s)",
			time.Duration(pick.Plan.WaitSeconds)*time.Second,
			humanize.Time(o.clock.Now().Add(time.Duration(pick.Plan.WaitSeconds)*time.Second)),
			pick.Plan.Strategy)

		out, err := o.sched.Wait(ctx, pick.Plan)
		if err != nil {
			return nil
		}
		switch out {
		case scheduler.OutcomeRollover:
			o.log.Info("hour changed while waiting, re-running now")
		case scheduler.OutcomeWoken:
			o.log.Info("wallpaper directory changed, re-running now")
		}
	}
}

// RunCycle resolves the current pick, applies it and fires the post-change
// command. A backend failure is returned; nothing else in a cycle is fatal
// except an unreadable main collection.
func (o *Orchestrator) RunCycle(ctx context.Context) (Pick, error) {
	pick, err := o.Resolve(o.clock.Now())
	if err != nil {
		return pick, err
	}
	if pick.Path == "" {
		o.log.Info("nothing to show for %s, keeping the current wallpaper", pick.Bucket)
	} else {
		// A started apply runs to completion; cancellation is honoured at the
		// loop top and between scheduler steps.
		if err := o.backend.Apply(context.WithoutCancel(ctx), pick.Path); err != nil {
			return pick, fmt.Errorf("%s: %w", o.backend.Name(), err)
		}
		o.log.Info("applied %s (%s %s, %d candidate(s), %s)", pick.Path, pick.Origin, pick.Bucket, pick.Candidates, pick.Policy)
		if o.hook != nil && o.cfg.General.ExecuteOnChange != "" {
			if err := o.hook.Fire(o.cfg.General.ExecuteOnChange, pick.Path); err != nil {
				pick.HookErr = err
			}
		}
	}
	pick.Plan.WaitSeconds = scheduler.WaitSeconds(pick.Plan.IntervalMinutes, o.clock.Now())
	return pick, nil
}

// Resolve decides what to show at now without side effects. Every call
// rescans the directories.
func (o *Orchestrator) Resolve(now time.Time) (Pick, error) {
	pick := Pick{
		Policy: o.cfg.General.GroupSelectionStrategy,
		Bucket: fmt.Sprintf("%02d", now.Hour()),
		Plan: scheduler.Plan{
			IntervalMinutes: scheduler.DefaultIntervalMinutes,
			Strategy:        scheduler.AdaptiveHalving,
			StartedAt:       now,
		},
	}

	res, name, ok := o.resolveSpecial(now)
	if ok {
		pick.Origin = OriginSpecial
		pick.Bucket = name
	} else {
		var err error
		res, err = o.resolveMain(now)
		if err != nil {
			return pick, err
		}
		if !res.Empty() {
			pick.Origin = OriginMain
		}
	}
	if res.Empty() {
		return pick, nil
	}

	if res.Source.IsGroup() {
		local, err := config.LocalPolicy(o.fs, res.Source.Path)
		if err != nil {
			o.log.Warning("ignoring local override: %v", err)
		} else if local != nil {
			pick.Policy = *local
		}
	}

	d, err := o.chooser.Choose(res.Paths, pick.Policy, pick.Plan.IntervalMinutes, pick.Plan.Strategy, now)
	if err != nil {
		return pick, err
	}
	if d.Oversubscribed {
		o.log.Warning("%d wallpapers in %s do not fit in %.0f minutes, each gets under a minute",
			len(res.Paths), res.Source.Path, pick.Plan.IntervalMinutes)
	}
	pick.Path = d.Path
	pick.Candidates = len(res.Paths)
	pick.Plan.IntervalMinutes = d.IntervalMinutes
	pick.Plan.Strategy = d.Strategy
	return pick, nil
}

// resolveSpecial consults the special collection. Any failure there is
// logged and reported as not found so the main collection is used instead.
func (o *Orchestrator) resolveSpecial(now time.Time) (selection.Resolution, string, bool) {
	if !o.cfg.General.EnableSpecial {
		return selection.Resolution{}, "", false
	}
	name, ok := o.cfg.SpecialName(now)
	if !ok {
		return selection.Resolution{}, "", false
	}
	ix, err := index.ScanNames(o.fs, o.cfg.Directories.Special, o.exts)
	if err != nil {
		o.log.Warning("special collection: %v", err)
		return selection.Resolution{}, "", false
	}
	items, found := ix.Lookup(name)
	if !found {
		o.log.Warning("special entry %q not found in %s", name, o.cfg.Directories.Special)
		return selection.Resolution{}, "", false
	}
	res := selection.Resolve(o.fs, items, o.exts)
	o.logSkipped(res)
	if res.Empty() {
		o.log.Warning("special entry %q has no usable wallpaper", name)
		return res, "", false
	}
	return res, name, true
}

func (o *Orchestrator) resolveMain(now time.Time) (selection.Resolution, error) {
	ix, err := index.ScanHours(o.fs, o.cfg.Directories.Wallpaper, o.exts, index.ScanOptions{})
	if err != nil {
		return selection.Resolution{}, err
	}
	items, ok := ix.Lookup(now.Hour())
	if !ok {
		return selection.Resolution{}, nil
	}
	res := selection.Resolve(o.fs, items, o.exts)
	o.logSkipped(res)
	return res, nil
}

func (o *Orchestrator) logSkipped(res selection.Resolution) {
	for _, err := range res.Skipped {
		o.log.Warning("skipping group: %v", err)
	}
}
