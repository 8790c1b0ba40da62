// Package etlutil contains basic iter utils.
package etlutil

import (
	"errors"

	"github.com/stdiopt/vizdata/drow"
	"github.com/stdiopt/vizdata/etl"
)

type (
	// Row is a drow.Row
	Row = drow.Row
	// Field is a drow.Field
	Field = drow.Field
	// Iter is a etl.Iter
	Iter = etl.Iter
)

func closeAll(its ...Iter) func() error {
	return func() error {
		var errs []error
		for _, it := range its {
			if err := it.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}
