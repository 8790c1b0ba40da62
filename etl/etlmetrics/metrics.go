// Package etlmetrics exposes prometheus metrics for iterator stages.
package etlmetrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/stdiopt/vizdata/etl"
)

// Iter is an etl.Iter
type Iter = etl.Iter

// Metrics holds the stage collectors, a nil *Metrics is valid and records
// nothing.
type Metrics struct {
	rows     *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates the collectors and registers them in reg, a nil reg skips
// registration.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "etl_rows_total",
			Help: "Number of values produced by an iterator stage.",
		}, []string{"stage"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "etl_stage_duration_seconds",
			Help:    "Time spent by a stage from the first value to its end.",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage", "status"}),
	}
	if reg != nil {
		reg.MustRegister(m.rows, m.duration)
	}
	return m
}

// Observe records the duration of a stage that started at start, status is
// "error" when err is not nil.
func (m *Metrics) Observe(stage string, start time.Time, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.duration.WithLabelValues(stage, status).Observe(time.Since(start).Seconds())
}

// Add increments the row counter of stage by n.
func (m *Metrics) Add(stage string, n int) {
	if m == nil {
		return
	}
	m.rows.WithLabelValues(stage).Add(float64(n))
}

// Count wraps it counting every produced value, the stage duration is
// observed when the iterator ends or fails.
func (m *Metrics) Count(it Iter, stage string) Iter {
	if m == nil {
		return it
	}
	var (
		start time.Time
		once  sync.Once
	)
	finish := func(err error) {
		once.Do(func() {
			if start.IsZero() {
				start = time.Now()
			}
			m.Observe(stage, start, err)
		})
	}
	return etl.MakeIter(etl.Custom[any]{
		Next: func(ctx context.Context) (any, error) {
			if start.IsZero() {
				start = time.Now()
			}
			v, err := it.Next(ctx)
			switch {
			case err == etl.EOI:
				finish(nil)
			case err != nil:
				finish(err)
			default:
				m.rows.WithLabelValues(stage).Inc()
			}
			return v, err
		},
		Close: func() error {
			finish(nil)
			return it.Close()
		},
	})
}
