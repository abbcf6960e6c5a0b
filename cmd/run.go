package cmd

import (
	"fmt"

	"github.com/chronowall/chronowall/cmd/common"
	"github.com/chronowall/chronowall/internal/daemon"
	"github.com/urfave/cli"
)

func run(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return fail("run", "load-config", err)
	}
	pidPath, err := pidFilePath()
	if err != nil {
		return fail("run", "pid-file", err)
	}
	if err := claimPidFile(pidPath); err != nil {
		return fail("run", "pid-file", err)
	}
	defer removePidFile(pidPath)

	l := newLogger(ctx, true)
	defer l.Close()
	l.Info("chronowall starting: backend %s, wallpapers in %s", cfg.General.Backend, cfg.Directories.Wallpaper)

	sctx, cancel := setupShutdownHandler()
	defer cancel()

	r := daemon.New(&daemon.Config{App: cfg}, &daemon.Dependencies{
		Fs:     osFs,
		Logger: l,
	})
	if err := r.Start(sctx); err != nil {
		l.Error("stopping: %v", err)
		return fail("run", "cycle", err)
	}
	l.Info("chronowall stopped")
	return nil
}

func once(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return fail("once", "load-config", err)
	}
	l := newLogger(ctx, false)
	defer l.Close()

	r := daemon.New(&daemon.Config{App: cfg}, &daemon.Dependencies{
		Fs:     osFs,
		Logger: l,
	})
	sctx, cancel := setupShutdownHandler()
	defer cancel()
	pick, err := r.Once(sctx)
	if err != nil {
		return fail("once", "apply", err)
	}
	if pick.Path == "" {
		fmt.Printf("Nothing to show for %s\n", pick.Bucket)
		return nil
	}
	fmt.Println(pick.Path)
	if pick.HookErr != nil {
		common.PrintRuntimeErr(ctx, "once", "post-command", pick.HookErr)
	}
	return nil
}
