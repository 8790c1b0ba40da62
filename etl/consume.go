package etl

import (
	"context"
	"fmt"
	"io"
)

// CollectContext collects all iterator values into a slice.
func CollectContext[T any](ctx context.Context, it Iter) ([]T, error) {
	xs := []T{}
	err := ConsumeContext(ctx, it, func(v T) error {
		xs = append(xs, v)
		return nil
	})
	return xs, err
}

// Collect is CollectContext with a background context.
func Collect[T any](it Iter) ([]T, error) {
	return CollectContext[T](context.Background(), it)
}

// ConsumeContext iterates over it calling fn for each value until the
// iterator ends or fn fails.
func ConsumeContext[T any](ctx context.Context, it Iter, fn func(T) error) error {
	for {
		vv, err := it.Next(ctx)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		v, ok := vv.(T)
		if !ok {
			return fmt.Errorf("Consume: type mismatch: %T", vv)
		}

		// Do nothing if nil but still consume.
		if fn == nil {
			continue
		}
		if err := fn(v); err != nil {
			return err
		}
	}
}

// Consume iterates over the given iterator and calls fn for each value.
func Consume[T any](it Iter, fn func(T) error) error {
	return ConsumeContext(context.Background(), it, fn)
}
