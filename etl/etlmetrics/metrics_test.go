package etlmetrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/stdiopt/vizdata/etl"
)

func TestCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	it := m.Count(etl.Values(1, 2, 3), "decode")
	got, err := etl.Collect[int](it)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Count() passed %d values, want 3", len(got))
	}
	it.Close()

	if v := testutil.ToFloat64(m.rows.WithLabelValues("decode")); v != 3 {
		t.Errorf("etl_rows_total = %v, want 3", v)
	}
	if n := testutil.CollectAndCount(m.duration, "etl_stage_duration_seconds"); n != 1 {
		t.Errorf("etl_stage_duration_seconds series = %d, want 1", n)
	}
}

func TestCount_Error(t *testing.T) {
	m := New(nil)
	it := m.Count(etl.ErrIter(errors.New("boom")), "fetch")
	if _, err := etl.Collect[any](it); err == nil {
		t.Fatalf("Collect() expected error")
	}
	it.Close()
	if v := testutil.ToFloat64(m.rows.WithLabelValues("fetch")); v != 0 {
		t.Errorf("etl_rows_total = %v, want 0", v)
	}
	if n := testutil.CollectAndCount(m.duration); n != 1 {
		t.Errorf("duration series = %d, want 1", n)
	}
	h, ok := m.duration.WithLabelValues("fetch", "error").(prometheus.Histogram)
	if !ok || testutil.CollectAndCount(h) != 1 {
		t.Errorf("expected a duration series with error status")
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	it := etl.Values(1)
	if m.Count(it, "x") != it {
		t.Errorf("nil Metrics.Count() should return the iterator as is")
	}
	m.Add("x", 1)
	m.Observe("x", time.Now(), nil)
}
