// Package dagg provides a simple interface for aggregating data.
package dagg

import (
	"fmt"

	"github.com/stdiopt/vizdata/drow"
	"github.com/stdiopt/vizdata/etl"
	"github.com/stdiopt/vizdata/util/set"
)

type (
	// Row is a drow.Row
	Row = drow.Row
	// Field is a drow.Field
	Field = drow.Field
)

// GroupFn type of function that produces the keys of the groups the value
// belongs to, a value can be a member of several groups or none.
type GroupFn[T any] func(T) ([]any, error)

// OptFn type of the option function for Agg
type OptFn[T any] func(*Agg[T])

// optField field to be reduced and aggregated..
type optField[T any] struct {
	name       string
	reduceFunc func(any, T) any
	finalFunc  func(any) any
}

// Agg groups values in first seen key order and reduces each group with the
// registered reducers.
type Agg[T any] struct {
	// KeyName is the name of the key field in the produced rows, defaults
	// to "group".
	KeyName string

	groups set.Set[any]
	grpFn  GroupFn[T]
	aggs   []optField[T]

	rows []Row

	curi int
}

// GroupBy sets the group function for the aggregation.
func (o *Agg[T]) GroupBy(fn GroupFn[T]) {
	o.grpFn = fn
}

// Reduce adds a reduce function for the aggregation, finalFunc is optional
// and is applied to the accumulated value when rows are produced.
func (o *Agg[T]) Reduce(name string, reduceFunc func(any, T) any, finalFunc func(any) any) {
	o.aggs = append(o.aggs, optField[T]{name, reduceFunc, finalFunc})
}

// Add adds a value to be processed and aggregated.
func (o *Agg[T]) Add(value T) error {
	if o.grpFn == nil {
		return fmt.Errorf("missing group func")
	}
	keys, err := o.grpFn(value)
	if err != nil {
		return err
	}

	// a value is folded once per distinct key
	seen := set.Set[any]{}
	for _, k := range keys {
		if _, dup := seen.IndexOrAdd(k); dup {
			continue
		}
		ri, ok := o.groups.IndexOrAdd(k)
		if !ok {
			o.rows = append(o.rows, make(Row, len(o.aggs)))
		}
		for i, a := range o.aggs {
			v := o.rows[ri][i].Value
			v = a.reduceFunc(v, value)
			o.rows[ri][i] = Field{Name: a.name, Value: v}
		}
	}
	return nil
}

// Len returns the number of groups.
func (o *Agg[T]) Len() int { return len(o.rows) }

// Rows returns all produced aggregation rows.
func (o *Agg[T]) Rows() []Row {
	ret := make([]Row, len(o.rows))
	for i := range o.rows {
		ret[i] = o.row(i)
	}
	return ret
}

// Each passes the produced aggregation row by calling fn
func (o *Agg[T]) Each(fn func(Row) error) error {
	for i := range o.rows {
		if err := fn(o.row(i)); err != nil {
			return err
		}
	}
	return nil
}

// Next fetches a row and increments the index.
func (o *Agg[T]) Next() (Row, error) {
	if o.curi >= len(o.rows) {
		return nil, etl.EOI
	}
	r := o.row(o.curi)
	o.curi++
	return r, nil
}

// row merges the group key and the final reduced values into a new row, a
// reducer named like an earlier field replaces its value.
func (o *Agg[T]) row(i int) Row {
	keyName := o.KeyName
	if keyName == "" {
		keyName = "group"
	}
	rc := make(Row, 1, 1+len(o.aggs))
	rc[0] = Field{Name: keyName, Value: o.groups.Data[i]}

	for fi, a := range o.aggs {
		v := o.rows[i][fi].Value
		if a.finalFunc != nil {
			v = a.finalFunc(v)
		}
		rc = rc.WithField(a.name, v)
	}
	return rc
}
