package dtable

import (
	"golang.org/x/exp/slices"

	"github.com/stdiopt/vizdata/util/conv"
)

// Filter keeps the rows whose column value, flattened one level, intersects
// Values. Empty Values allows every row.
type Filter struct {
	Column string `json:"column"`
	Values []any  `json:"values"`
}

// Match reports whether the row passes the filter.
func (f Filter) Match(r Row) bool {
	if len(f.Values) == 0 {
		return true
	}
	for _, v := range r.At(f.Column).Flat() {
		if slices.ContainsFunc(f.Values, func(a any) bool { return conv.Equal(a, v) }) {
			return true
		}
	}
	return false
}

// FilterRows returns the rows that pass every filter, in their original
// order. Without filters the input table is returned.
func FilterRows(t Table, filters []Filter) Table {
	if len(filters) == 0 {
		return t
	}
	ret := Table{}
	for _, r := range t {
		if matchAll(r, filters) {
			ret = append(ret, r)
		}
	}
	return ret
}

func matchAll(r Row, filters []Filter) bool {
	for _, f := range filters {
		if !f.Match(r) {
			return false
		}
	}
	return true
}
