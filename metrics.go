package bento

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes main loop counters to Prometheus. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	ticks   prometheus.Counter
	frames  prometheus.Counter
	dropped prometheus.Counter
	objects prometheus.Gauge
	draw    prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bento",
			Name:      "update_ticks_total",
			Help:      "Fixed-step update ticks run.",
		}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bento",
			Name:      "frames_total",
			Help:      "Frames drawn.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bento",
			Name:      "dropped_seconds_total",
			Help:      "Simulation time dropped by the catch-up cap.",
		}),
		objects: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "bento",
			Name:      "objects",
			Help:      "Live top-level objects in the registry.",
		}),
		draw: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bento",
			Name:      "draw_duration_seconds",
			Help:      "Time spent in the draw pass.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 8),
		}),
	}
	for _, c := range []prometheus.Collector{m.ticks, m.frames, m.dropped, m.objects, m.draw} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) tick() {
	if m == nil {
		return
	}
	m.ticks.Inc()
}

func (m *Metrics) frame(d time.Duration) {
	if m == nil {
		return
	}
	m.frames.Inc()
	m.draw.Observe(d.Seconds())
}

func (m *Metrics) drop(d time.Duration) {
	if m == nil {
		return
	}
	m.dropped.Add(d.Seconds())
}

func (m *Metrics) setObjects(n int) {
	if m == nil {
		return
	}
	m.objects.Set(float64(n))
}
