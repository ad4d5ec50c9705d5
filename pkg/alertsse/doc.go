// Package alertsse executes rendered alerts against a browser page.
//
// A Host takes the output of alert.Renderer and performs its lifecycle
// requests through a Patcher: evicted group members are removed, the new
// element is appended, "show" is added after the reveal delay and, for
// auto-destroying alerts, the element fades out and is removed.
//
// SSEPatcher drives a page over datastar server-sent events. Document is
// an in-memory Patcher for tests.
//
// # HTTP
//
// Handler exposes the renderer over chi:
//
//	h := alertsse.NewHandler(renderer, tracker, loop,
//		alertsse.WithPresets(presets),
//		alertsse.WithTarget("#alerts"),
//	)
//	r.Mount("/alerts", h.Routes())
//
// POST / renders an alert from a JSON body:
//
//	{"preset": "flash", "config": {"dismissible": true}, "content": [{"type": "p", "text": "Saved"}]}
//
// Datastar requests receive the patches over SSE and the stream stays open
// until every lifecycle callback has run. Plain requests receive the
// fragment as text/html with the lifecycle requests in the X-Alert-Requests
// header. DELETE /{id} dismisses an alert manually.
//
// Timers are provided by a timer.Scheduler. With timer.Loop all callbacks
// run on one goroutine.
package alertsse
