//go:build !windows

package cmd

import (
	"golang.org/x/sys/unix"
)

// isProcessRunning reports whether pid exists, probing it with signal 0.
// EPERM means the process exists but belongs to someone else.
func isProcessRunning(pid int) bool {
	err := unix.Kill(pid, 0)
	return err == nil || err == unix.EPERM
}
