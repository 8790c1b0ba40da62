package etl

import (
	"context"
	"io"
	"sync"
)

// Y yield parameter.
type Y[T any] func(T) error

type msg[T any] struct {
	value T
	err   error
}

// Gen describes a generator, Run is started on the first Next and yields
// values until it returns.
type Gen[T any] struct {
	Run   func(context.Context, Y[T]) error
	Close func() error
}

// MakeGen creates an Iter that runs g.Run in a goroutine and hands each
// yielded value to Next.
func MakeGen[T any](g Gen[T]) Iter {
	ch := make(chan msg[T])
	ictx, cancel := context.WithCancelCause(context.Background())

	yield := func(value T) error {
		select {
		case <-ictx.Done():
			return ictx.Err()
		case ch <- msg[T]{value: value}:
			return nil
		}
	}

	runner := func() {
		go func() {
			defer close(ch)
			if err := g.Run(ictx, yield); err != nil {
				select {
				case <-ictx.Done():
				case ch <- msg[T]{err: err}:
				}
			}
		}()
	}
	once := sync.Once{}

	return MakeIter(Custom[T]{
		Next: func(ctx context.Context) (T, error) {
			once.Do(runner)
			var z T
			select {
			case <-ctx.Done():
				cancel(ctx.Err())
				return z, ctx.Err()
			case <-ictx.Done():
				return z, ictx.Err()
			case msg, ok := <-ch:
				if !ok {
					return z, io.EOF
				}
				return msg.value, msg.err
			}
		},
		Close: func() error {
			var err error
			if g.Close != nil {
				err = g.Close()
			}
			cancel(err)
			return err
		},
	})
}
