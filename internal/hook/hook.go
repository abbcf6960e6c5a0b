// Package hook runs the user's post-change command.
package hook

import (
	"bytes"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/chronowall/chronowall/pkg/logger"
)

// WallpaperEnv carries the applied wallpaper path to the command.
const WallpaperEnv = "CHRONOWALL_WALLPAPER"

// Hook starts post-change commands without waiting for them. Output and
// exit status are logged from a background goroutine.
type Hook struct {
	log   logger.Logger
	shell []string
	wg    sync.WaitGroup
}

// New returns a Hook that runs commands through "bash -c", or "cmd /C" on
// Windows.
func New(l logger.Logger) *Hook {
	shell := []string{"bash", "-c"}
	if runtime.GOOS == "windows" {
		shell = []string{"cmd", "/C"}
	}
	return &Hook{log: l, shell: shell}
}

// Fire starts command with WallpaperEnv set to wallpaper. An empty command
// is a no-op. The returned error only reports a failure to start; it is
// never fatal to the caller.
func (h *Hook) Fire(command, wallpaper string) error {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil
	}
	args := append(append([]string(nil), h.shell[1:]...), command)
	cmd := exec.Command(h.shell[0], args...)
	cmd.Env = append(os.Environ(), WallpaperEnv+"="+wallpaper)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Start(); err != nil {
		h.log.Warning("post command %q failed to start: %v", command, err)
		return err
	}
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		err := cmd.Wait()
		if s := strings.TrimSpace(out.String()); s != "" {
			h.log.Info("post command output: %s", s)
		}
		if err != nil {
			h.log.Warning("post command %q: %v", command, err)
			return
		}
		h.log.Info("post command %q finished", command)
	}()
	return nil
}

// Wait blocks until every started command has exited.
func (h *Hook) Wait() {
	h.wg.Wait()
}
