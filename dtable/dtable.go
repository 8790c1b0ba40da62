// Package dtable holds the in memory table transforms that turn source rows
// into chart data: column reshaping, unique values, filtering, wide to long
// pivoting and key based aggregation.
//
// Transforms never mutate their input, rows are shallow copied before being
// modified.
package dtable

import (
	"github.com/stdiopt/vizdata/drow"
	"github.com/stdiopt/vizdata/etl"
)

type (
	// Row is a drow.Row
	Row = drow.Row
	// Field is a drow.Field
	Field = drow.Field
)

// Table is an ordered sequence of rows.
type Table []Row

// Columns returns the column names of the table, derived from the first row.
func (t Table) Columns() []string {
	if len(t) == 0 {
		return []string{}
	}
	return t[0].Columns()
}

// Iter returns an iterator over the table rows.
func (t Table) Iter() etl.Iter {
	return etl.Values(t...)
}

// Collect drains a drow.Row iterator into a Table.
func Collect(it etl.Iter) (Table, error) {
	rows, err := etl.Collect[Row](it)
	if err != nil {
		return nil, err
	}
	return Table(rows), nil
}
