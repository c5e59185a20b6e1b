package automod

import "time"

// Scheduler defers a callback by a duration. Fire and forget: there is no
// cancellation (a scheduled unmute against an already-clean state is harmless)
// and no persistence (a process restart loses pending callbacks, leaving
// affected users muted until manual intervention — known limitation).
type Scheduler interface {
	After(d time.Duration, fn func())
}

// TimerScheduler runs callbacks on real timers
type TimerScheduler struct{}

// After fires fn once d has elapsed
func (TimerScheduler) After(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}
