package dtable

import (
	"math"
	"strings"

	"github.com/stdiopt/vizdata/drow"
	"github.com/stdiopt/vizdata/util/conv"
)

// ColumnConfig declares a column whose string values are split into a
// sequence.
type ColumnConfig struct {
	Column    string `json:"column"`
	Delimiter string `json:"delimiter,omitempty"`
}

// ColumnsToArray returns a table where each configured column holds a
// []string made of its value split on the delimiter (',' by default) with
// every element trimmed. Falsy and missing values become an empty sequence,
// values that already are sequences are kept so the transform can be applied
// twice. Without configuration the input table is returned.
func ColumnsToArray(t Table, cfgs []ColumnConfig) Table {
	if len(cfgs) == 0 {
		return t
	}
	ret := make(Table, len(t))
	for i, r := range t {
		nr := r.Clone()
		for _, c := range cfgs {
			v := nr.Value(c.Column)
			if drow.IsList(v) {
				continue
			}
			nr = nr.WithField(c.Column, split(v, c.Delimiter))
		}
		ret[i] = nr
	}
	return ret
}

func split(v any, delim string) []string {
	if isFalsy(v) {
		return []string{}
	}
	if delim == "" {
		delim = ","
	}
	parts := strings.Split(conv.ToString(v), delim)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// isFalsy reports nil, empty strings, false and numeric zero.
func isFalsy(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	}
	if f, ok := conv.Float64(v); ok {
		return f == 0 || math.IsNaN(f)
	}
	return false
}
