package dtable

import (
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/stats"

	"github.com/stdiopt/vizdata/util/conv"
	"github.com/stdiopt/vizdata/util/dagg"
)

// Method is the reduce method of an aggregated column.
type Method string

// Aggregation methods, an empty or unknown method sums.
const (
	Sum     Method = "sum"
	Average Method = "average"
	Min     Method = "min"
	Max     Method = "max"
)

// AggregationSetting declares a column to reduce within each group.
type AggregationSetting struct {
	Column string `json:"column"`
	Method Method `json:"aggregationMethod,omitempty"`
}

// Aggregate groups the rows by keyColumn and produces one row per group
// shaped {keyColumn, count, ...one field per setting}. Groups are emitted in
// the order their key is first seen. A sequence valued key makes the row a
// member of each of its distinct elements.
//
// Values that are nil or not numeric are skipped by the reducers, a column
// without any numeric value in the group reduces to nil. Every field name
// appears once: a setting on "count" replaces the count, a setting on the
// key column is ignored.
func Aggregate(t Table, keyColumn string, settings []AggregationSetting) Table {
	a := dagg.Agg[Row]{KeyName: keyColumn}
	a.GroupBy(func(r Row) ([]any, error) {
		return r.At(keyColumn).Flat(), nil
	})
	a.Reduce("count", func(acc any, _ Row) any {
		n, _ := acc.(int)
		return n + 1
	}, nil)
	for _, s := range settings {
		// the key is never reduced
		if s.Column == keyColumn {
			continue
		}
		column := s.Column
		a.Reduce(column, func(acc any, r Row) any {
			xs, _ := acc.([]float64)
			if f, ok := number(r.Value(column)); ok {
				xs = append(xs, f)
			}
			return xs
		}, reducer(s.Method))
	}
	for _, r := range t {
		// the group func never fails
		a.Add(r) // nolint: errcheck
	}
	return Table(a.Rows())
}

func reducer(m Method) func(any) any {
	return func(acc any) any {
		xs, _ := acc.([]float64)
		if len(xs) == 0 {
			return nil
		}
		switch m {
		case Average:
			return stats.Mean(xs)
		case Min:
			lo, _ := stats.Bounds(xs)
			return lo
		case Max:
			_, hi := stats.Bounds(xs)
			return hi
		default:
			return stats.Sample{Xs: xs}.Sum()
		}
	}
}

// number returns the float64 value of numeric values and numeric strings.
func number(v any) (float64, bool) {
	if f, ok := conv.Float64(v); ok {
		return f, true
	}
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
