// Package alertmetrics exports alert counters to Prometheus.
//
// Collector implements alert.Observer. Register it with both the renderer
// and the tracker so the live gauge goes down when alerts are destroyed:
//
//	reg := prometheus.NewRegistry()
//	metrics := alertmetrics.New(reg)
//	renderer := alert.NewRenderer(registry, alert.WithObserver(metrics))
//	tracker := alert.NewTracker(registry, alert.WithTrackerObserver(metrics))
package alertmetrics
