package cmd

import (
	"fmt"
	"time"

	"github.com/chronowall/chronowall/cmd/common"
	"github.com/chronowall/chronowall/internal/backend"
	"github.com/chronowall/chronowall/internal/daemon"
	"github.com/chronowall/chronowall/internal/scheduler"
	"github.com/urfave/cli"
)

// now is swapped in tests.
var now = time.Now

// next resolves the current pick without applying it. The backend is only
// used for its extension list and is never initialized.
func next(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return fail("next", "load-config", err)
	}
	b, err := backend.New(cfg.General.Backend, backend.Options{})
	if err != nil {
		return fail("next", "backend", err)
	}
	orch := daemon.NewOrchestrator(cfg, daemon.OrchestratorDeps{
		Fs:      osFs,
		Backend: b,
	})

	t := now()
	pick, err := orch.Resolve(t)
	if err != nil {
		return fail("next", "resolve", err)
	}
	if pick.Path == "" {
		fmt.Printf("Now:   nothing for %s\n", pick.Bucket)
	} else {
		fmt.Printf("Now:   %s (%s %s, %d candidate(s), %s)\n",
			pick.Path, pick.Origin, pick.Bucket, pick.Candidates, pick.Policy)
	}
	wait := scheduler.WaitSeconds(pick.Plan.IntervalMinutes, t)
	fmt.Printf("Next:  %s\n", common.HumanWait(wait, t))
	return nil
}
