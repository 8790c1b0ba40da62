// Package etlsql produces drow.Row iterators from sql queries.
package etlsql

import (
	"context"
	"database/sql"
	"io"

	"github.com/stdiopt/vizdata/drow"
	"github.com/stdiopt/vizdata/etl"
)

type (
	// Row is a drow.Row
	Row = drow.Row
	// Iter is an etl.Iter
	Iter = etl.Iter
)

// SQLQuery is implemented by *sql.DB, *sql.Conn and *sql.Tx.
type SQLQuery interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// DB wraps a query target, errors from Open are deferred to Query.
type DB struct {
	q      SQLQuery
	closer io.Closer
	err    error
}

// Err returns the error from Open if any.
func (d DB) Err() error { return d.err }

// New returns a new DB with the given query target.
func New(q SQLQuery) DB {
	return DB{q: q}
}

// Open opens a DB connection similar to sql.Open.
func Open(driver, dsn string) DB {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return DB{err: err}
	}
	return DB{q: db, closer: db}
}

// Close closes the underlying connection if it was created by Open.
func (d DB) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}

// Query executes the given query on the first Next and returns an iterator
// that produces drow.Row.
func (d DB) Query(query string, args ...any) Iter {
	if d.err != nil {
		return etl.ErrIter(d.err)
	}
	var rows *sql.Rows
	var cols []string
	return etl.MakeIter(etl.Custom[Row]{
		Next: func(ctx context.Context) (Row, error) {
			if rows == nil {
				var err error
				rows, err = d.q.QueryContext(ctx, query, args...)
				if err != nil {
					return nil, err
				}

				cols, err = rows.Columns()
				if err != nil {
					return nil, err
				}
			}
			if !rows.Next() {
				if err := rows.Err(); err != nil {
					return nil, err
				}
				return nil, etl.EOI
			}

			return scanRow(rows, cols)
		},
		Close: func() error {
			if rows == nil {
				return nil
			}
			return rows.Close()
		},
	})
}
