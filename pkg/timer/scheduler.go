package timer

import "time"

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	ScheduleAfter(delay time.Duration, fn func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(delay time.Duration, fn func())

func (f SchedulerFunc) ScheduleAfter(delay time.Duration, fn func()) {
	f(delay, fn)
}
