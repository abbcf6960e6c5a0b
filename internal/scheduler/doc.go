// Package scheduler computes how long chronowall should wait before its next
// decision point and performs that wait.
//
// Two wait strategies exist. PlainSleep performs one sleep for the full
// duration and is used once the spread policy has already cut the window into
// short slices. AdaptiveHalving sleeps for half of the remaining time, wakes,
// re-reads the wall clock and repeats, so that an hour roll-over caused by a
// suspend/resume or an NTP step is noticed after O(log2 n) wake-ups instead of
// overshooting the target by the length of the suspension.
//
// The scheduler does not persist state; every cycle hands it a fresh Plan.
package scheduler
