// Package timer provides the delay service that executes alert lifecycle
// requests.
//
// Scheduler is the only contract: run fn no earlier than delay from now.
// There is no cancellation; a callback whose target is gone is expected to
// be a no-op on the caller's side.
//
// Loop runs every callback on a single goroutine, so callbacks never run in
// parallel with each other:
//
//	loop := timer.NewLoop()
//	go loop.Run(ctx)
//	loop.ScheduleAfter(100*time.Millisecond, func() { ... })
//
// Manual is a virtual clock for tests. Nothing fires until Advance is called:
//
//	clock := timer.NewManual()
//	clock.ScheduleAfter(time.Second, fn)
//	clock.Advance(time.Second) // fn runs here, on the calling goroutine
package timer
