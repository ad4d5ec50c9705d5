// Package alert builds transient notification widgets ("alerts") as
// self-contained markup fragments, caps how many alerts of one group may
// coexist, and describes their appearance and disappearance timing as data.
//
// The package never touches a live page. It decides what markup to emit and
// which lifecycle requests (reveal, destroy, evict) the host should execute;
// see pkg/alertsse for a datastar host and pkg/timer for schedulers.
//
// # Architecture
//
//   - Color: the fixed set of background tokens and the Resolve fallback policy.
//   - Classes: extra container classes from a string, a list or a map.
//   - Content: an append-only markup buffer (paragraphs, links, headings, raw HTML).
//   - Config: defaults merged with options or decoded Overrides; Presets group them by name.
//   - Registry: live alerts per group, oldest-first eviction.
//   - Renderer: composes everything into a Rendered alert.
//   - Tracker: per-alert lifecycle state; destroying an alert releases it from the Registry.
//
// # Usage
//
//	reg := alert.NewRegistry()
//	renderer := alert.NewRenderer(reg)
//
//	cfg := alert.DefaultConfig(
//	    alert.WithDismissible(true),
//	    alert.WithBackground(alert.Success),
//	    alert.WithGroup("flash"),
//	    alert.WithMaxCount(3),
//	)
//
//	content := alert.NewContent()
//	content.AddHeading(4, "Saved")
//	content.AddParagraph("Your profile was updated.")
//	content.AddParaLink("View profile", "/me", alert.WithTarget("_self"))
//
//	out := renderer.Render(cfg, content)
//	// out.Markup is ready to insert; out.Requests lists evictions first,
//	// then the reveal and auto-destroy requests.
//
// # Error Handling
//
// Invalid input is normalized, never reported: an unknown background falls
// back to the configured default, heading levels are clamped, and a full
// group evicts its oldest member. Only Tracker returns errors
// (ErrUnknownAlert, *ErrNoTransition), and hosts treat those as no-ops.
//
// # Concurrency
//
// Registry and Tracker are safe for concurrent use. Config and Content are not.
package alert
