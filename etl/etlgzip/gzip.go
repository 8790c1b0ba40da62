// Package etlgzip handles gzip compressed streams.
package etlgzip

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"

	"github.com/stdiopt/vizdata/etl"
	"github.com/stdiopt/vizdata/etl/etlio"
)

type gunzipOptions struct {
	BufSize int
}

// GunzipOptFunc configures Gunzip.
type GunzipOptFunc func(*gunzipOptions)

// WithBufSize sets the size of the yielded chunks.
func WithBufSize(size int) GunzipOptFunc {
	return func(o *gunzipOptions) {
		o.BufSize = size
	}
}

func makeGunzipOptions(opts ...GunzipOptFunc) gunzipOptions {
	o := gunzipOptions{
		BufSize: 4096,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Gunzip consumes gzipped compressed data and produces []byte of uncompressed
// data.
func Gunzip(it etl.Iter, opts ...GunzipOptFunc) etl.Iter {
	o := makeGunzipOptions(opts...)
	var rd io.Reader
	eof := false
	return etl.MakeIter(etl.Custom[[]byte]{
		Next: func(ctx context.Context) ([]byte, error) {
			if eof {
				return nil, etl.EOI
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if rd == nil {
				gr, err := gzip.NewReader(etlio.AsReaderContext(ctx, it))
				if err != nil {
					return nil, fmt.Errorf("etlgzip.Gunzip: %w", err)
				}
				rd = gr
			}

			buf := make([]byte, o.BufSize)
			n, err := rd.Read(buf)
			switch {
			case err == io.EOF:
				eof = true
				if n == 0 {
					return nil, etl.EOI
				}
			case err != nil:
				return nil, err
			}

			return buf[:n], nil
		},
		Close: it.Close,
	})
}
