package scheduler

import (
	"math"
	"time"
)

// WaitSeconds returns the number of seconds from now until the next boundary
// that is a multiple of intervalMinutes measured from the top of the hour.
//
// The result is always in [1, ceil(intervalMinutes*60)]: exactly on a boundary
// the full interval is returned, never zero.
func WaitSeconds(intervalMinutes float64, now time.Time) int64 {
	boundary := int64(math.Ceil(intervalMinutes * 60))
	if boundary < 1 {
		boundary = 1
	}
	elapsed := int64(now.Minute()*60 + now.Second())
	return boundary - elapsed%boundary
}

// Recompute re-derives the wait after a wake-up.
//
// If the hour of now differs from the hour of startedAt, it reports a
// roll-over with a zero wait, meaning the cycle must re-run immediately.
// Backward clock jumps are treated as the same hour unless the hour value
// itself differs.
func Recompute(intervalMinutes float64, startedAt, now time.Time) (rolledOver bool, wait int64) {
	if now.Hour() != startedAt.Hour() {
		return true, 0
	}
	return false, WaitSeconds(intervalMinutes, now)
}

func seconds(n int64) time.Duration {
	return time.Duration(n) * time.Second
}
