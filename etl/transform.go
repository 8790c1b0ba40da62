package etl

import (
	"context"
	"fmt"
)

// Map returns an interator that transforms the values of the source
// iterator using the func fn.
func Map[Ti, To any](it Iter, fn func(Ti) To) Iter {
	return MapE(it, func(v Ti) (To, error) {
		return fn(v), nil
	})
}

// MapE is like Map but fn can fail, the error is returned by Next.
func MapE[Ti, To any](it Iter, fn func(Ti) (To, error)) Iter {
	return MakeIter(Custom[To]{
		Next: func(ctx context.Context) (To, error) {
			var z To
			vv, err := it.Next(ctx)
			if err != nil {
				return z, err
			}
			v, ok := vv.(Ti)
			if !ok {
				return z, fmt.Errorf("etl.Map: type mismatch: %T", vv)
			}

			return fn(v)
		},
		Close: it.Close,
	})
}

// FilterFunc reports whether a value passes.
type FilterFunc[T any] func(T) bool

// Filter returns an iterator that filters the values of the source given the func fn
// if fn returns true the value is passed through
func Filter[T any](it Iter, fn FilterFunc[T]) Iter {
	return MakeIter(Custom[T]{
		Next: func(ctx context.Context) (T, error) {
			var z T
			for {
				vv, err := it.Next(ctx)
				if err != nil {
					return z, err
				}
				v, ok := vv.(T)
				if !ok {
					return z, fmt.Errorf("etl.Filter: type mismatch: %T", vv)
				}
				if fn(v) {
					return v, nil
				}
			}
		},
		Close: it.Close,
	})
}

// WrapErr returns an iterator that passes every error but EOI of it through
// fn.
func WrapErr(it Iter, fn func(error) error) Iter {
	return MakeIter(Custom[any]{
		Next: func(ctx context.Context) (any, error) {
			v, err := it.Next(ctx)
			if err != nil && err != EOI {
				return v, fn(err)
			}
			return v, err
		},
		Close: it.Close,
	})
}
