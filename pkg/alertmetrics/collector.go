package alertmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dmitrymomot/alertkit/pkg/alert"
)

const namespace = "alertkit"

// Collector counts rendered, evicted and destroyed alerts.
type Collector struct {
	rendered  *prometheus.CounterVec
	evicted   *prometheus.CounterVec
	destroyed prometheus.Counter
	live      prometheus.Gauge
}

var _ alert.Observer = (*Collector)(nil)

// New creates a Collector and registers its metrics on reg.
// A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Collector{
		rendered: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "alerts_rendered_total",
				Help:      "Total number of rendered alerts",
			},
			[]string{"background"},
		),
		evicted: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "alerts_evicted_total",
				Help:      "Total number of alerts evicted by a group cap",
			},
			[]string{"group"},
		),
		destroyed: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "alerts_destroyed_total",
				Help:      "Total number of destroyed alerts",
			},
		),
		live: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "alerts_live",
				Help:      "Tracked alerts not yet destroyed",
			},
		),
	}
}

func (c *Collector) Rendered(r *alert.Rendered) {
	c.rendered.WithLabelValues(r.Background.String()).Inc()
}

func (c *Collector) Evicted(_, groupID string) {
	c.evicted.WithLabelValues(groupID).Inc()
}

func (c *Collector) Tracked(string) {
	c.live.Inc()
}

func (c *Collector) Destroyed(string) {
	c.destroyed.Inc()
	c.live.Dec()
}
