package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/alertkit/pkg/alert"
	"github.com/dmitrymomot/alertkit/pkg/alertmetrics"
	"github.com/dmitrymomot/alertkit/pkg/alertsse"
	"github.com/dmitrymomot/alertkit/pkg/config"
	"github.com/dmitrymomot/alertkit/pkg/logger"
	"github.com/dmitrymomot/alertkit/pkg/timer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(logger.WithEnvironment(cfg.Env, cfg.Service))
	logger.SetAsDefault(log)

	presets, err := loadPresets(cfg.PresetsFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsRegistry := prometheus.NewRegistry()
	metrics := alertmetrics.New(metricsRegistry)

	registry := alert.NewRegistry()
	renderer := alert.NewRenderer(registry,
		alert.WithObserver(metrics),
		alert.WithLogger(log),
	)
	tracker := alert.NewTracker(registry, alert.WithTrackerObserver(metrics))
	loop := timer.NewLoop(timer.WithLoopLogger(log))

	alerts := alertsse.NewHandler(renderer, tracker, loop,
		alertsse.WithDefaults(cfg.Alerts),
		alertsse.WithPresets(presets),
		alertsse.WithHandlerLogger(log),
		alertsse.WithTarget("#"+cfg.ContainerID),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := indexPage(presetNames(presets), cfg.ContainerID).Render(r.Context(), w); err != nil {
			log.WarnContext(r.Context(), "failed to render index", logger.Error(err))
		}
	})
	r.Mount("/alerts", alerts.Routes())
	r.Handle("/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return serve(ctx, cfg.HTTP, r, log)
	})

	log.InfoContext(ctx, "alertd started",
		slog.String("env", cfg.Env),
		slog.Int("presets", len(presets)),
	)
	return g.Wait()
}

func loadPresets(path string) (alert.Presets, error) {
	if path == "" {
		return alert.Presets{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open presets file: %w", err)
	}
	defer f.Close()
	return alert.LoadPresets(f)
}

func presetNames(p alert.Presets) []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
