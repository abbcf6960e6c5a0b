package cmd

import (
	"fmt"
	"os"

	"github.com/chronowall/chronowall/cmd/common"
	"github.com/urfave/cli"
)

func stop(ctx *cli.Context) error {
	path, err := pidFilePath()
	if err != nil {
		return fail("stop", "pid-file", err)
	}
	pid, err := readPidFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("chronowall is not running (no PID file)")
			return nil
		}
		common.PrintRuntimeErr(ctx, "stop", "read-pid", err)
		return nil
	}
	if !isProcessRunning(pid) {
		fmt.Printf("chronowall is not running (stale PID %d)\n", pid)
		_ = removePidFile(path)
		return nil
	}

	fmt.Printf("Stopping chronowall (PID %d)...\n", pid)
	if err := killDaemon(pid); err != nil {
		return fail("stop", "kill", err)
	}
	fmt.Println("chronowall stopped")
	return nil
}
