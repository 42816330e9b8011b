package bento

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gather returns the value of every counter and gauge in reg, plus the
// sample count of every histogram, keyed by metric name.
func gather(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	out := make(map[string]float64, len(families))
	for _, f := range families {
		m := f.GetMetric()[0]
		switch {
		case m.GetCounter() != nil:
			out[f.GetName()] = m.GetCounter().GetValue()
		case m.GetGauge() != nil:
			out[f.GetName()] = m.GetGauge().GetValue()
		case m.GetHistogram() != nil:
			out[f.GetName()] = float64(m.GetHistogram().GetSampleCount())
		}
	}
	return out
}

func TestMetricsMainLoop(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)

	m := NewObjectManager(ManagerConfig{Metrics: metrics})
	NewEntity(EntityConfig{Name: "a", AddNow: m})
	NewEntity(EntityConfig{Name: "b", AddNow: m})

	// A ten step stall runs one update and drops the other nine.
	m.MainLoop(m.lastTime.Add(10 * FixedStep))

	got := gather(t, reg)
	assert.Equal(t, 1.0, got["bento_update_ticks_total"])
	assert.Equal(t, 1.0, got["bento_frames_total"])
	assert.Equal(t, 1.0, got["bento_draw_duration_seconds"])
	assert.Equal(t, 2.0, got["bento_objects"])
	assert.InDelta(t, (9 * FixedStep).Seconds(), got["bento_dropped_seconds_total"], 1e-9)
}

func TestMetricsObjectGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)

	m := NewObjectManager(ManagerConfig{Metrics: metrics})
	e := NewEntity(EntityConfig{AddNow: m})
	assert.Equal(t, 1.0, gather(t, reg)["bento_objects"])
	m.Remove(e)
	assert.Equal(t, 0.0, gather(t, reg)["bento_objects"])
}

func TestMetricsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)
	_, err = NewMetrics(reg)
	assert.Error(t, err)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.tick()
		m.frame(FixedStep)
		m.drop(FixedStep)
		m.setObjects(3)
	})
}
