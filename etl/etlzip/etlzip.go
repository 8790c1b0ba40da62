// Package etlzip iterates over zip files data.
package etlzip

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/krolaw/zipstream"

	"github.com/stdiopt/vizdata/etl"
	"github.com/stdiopt/vizdata/etl/etlio"
)

// Iter is an etl.Iter
type Iter = etl.Iter

// Entry is a file in the zip stream, Iter yields its uncompressed []byte
// and is only valid during the EachFile callback.
type Entry struct {
	Iter
	Name           string
	CompressedSize uint64
	Size           uint64
}

// EachFn is called for every matched entry.
type EachFn[T any] func(context.Context, Entry, etl.Y[T]) error

// EachFile consumes a []byte iterator of a zip archive and calls fn for every
// entry whose base name matches pattern, values yielded by fn are produced by
// the returned iterator.
func EachFile[T any](it Iter, pattern string, fn EachFn[T]) Iter {
	return etl.MakeGen(etl.Gen[T]{
		Run: func(ctx context.Context, yield etl.Y[T]) error {
			if _, err := filepath.Match(pattern, ""); err != nil {
				return fmt.Errorf("etlzip.EachFile: bad pattern '%s': %w", pattern, err)
			}
			zs := zipstream.NewReader(etlio.AsReaderContext(ctx, it))
			for {
				hdr, err := zs.Next()
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return fmt.Errorf("etlzip.EachFile: failed to consume iter: %w", err)
				}
				if hdr.FileInfo().IsDir() {
					continue
				}

				ok, _ := filepath.Match(pattern, filepath.Base(hdr.Name))
				if !ok {
					continue
				}

				e := Entry{
					Iter:           etlio.FromReader(zs),
					Name:           hdr.Name,
					CompressedSize: hdr.CompressedSize64,
					Size:           hdr.UncompressedSize64,
				}
				if err := fn(ctx, e, yield); err != nil {
					return err
				}
			}
		},
		Close: it.Close,
	})
}
