package dtable

import (
	"golang.org/x/exp/slices"

	"github.com/stdiopt/vizdata/drow"
	"github.com/stdiopt/vizdata/util/conv"
	"github.com/stdiopt/vizdata/util/set"
)

// Unique returns the distinct values of column sorted ascending. When the
// first row holds a sequence every row value is flattened into the pool,
// otherwise values are taken as they are. Nil values are not reported.
func Unique(t Table, column string) []any {
	if len(t) == 0 {
		return []any{}
	}
	list := drow.IsList(t[0].Value(column))

	s := set.Set[any]{}
	for _, r := range t {
		f := r.At(column)
		vs := []any{f.Value}
		if list {
			vs = f.Flat()
		}
		for _, v := range vs {
			if v == nil {
				continue
			}
			s.Add(v)
		}
	}

	ret := append([]any{}, s.Data...)
	slices.SortStableFunc(ret, conv.Compare)
	return ret
}
