// Package etlparquet decodes and encodes parquet files as drow.Row.
package etlparquet

import (
	"bytes"
	"context"
	"fmt"

	goparquet "github.com/fraugster/parquet-go"
	"github.com/fraugster/parquet-go/floor"
	"github.com/fraugster/parquet-go/parquet"

	"github.com/stdiopt/vizdata/drow"
	"github.com/stdiopt/vizdata/etl"
	"github.com/stdiopt/vizdata/etl/etlio"
)

type (
	// Iter is an etl.Iter
	Iter = etl.Iter
	// Row is a drow.Row
	Row = drow.Row
)

// Decode consumes a []byte iterator holding a parquet file and produces a
// drow.Row per record, the file is kept in memory since parquet needs to
// seek to its footer.
func Decode(it Iter) Iter {
	return etl.MakeGen(etl.Gen[Row]{
		Run: func(ctx context.Context, yield etl.Y[Row]) error {
			data, err := etlio.ReadAll(ctx, it)
			if err != nil {
				return err
			}

			pr, err := goparquet.NewFileReader(bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("etlparquet.Decode: %w", err)
			}
			def := pr.GetSchemaDefinition()
			fr := floor.NewReader(pr)
			defer fr.Close()

			for fr.Next() {
				du := &drowUnmarshaler{schema: def}
				if err := fr.Scan(du); err != nil {
					return err
				}
				if err := yield(du.row); err != nil {
					return err
				}
			}
			return fr.Err()
		},
		Close: it.Close,
	})
}

// Encode consumes drow.Row and produces parquet []byte, the schema is taken
// from the first row.
func Encode(it Iter) Iter {
	return etl.MakeGen(etl.Gen[[]byte]{
		Run: func(ctx context.Context, yield etl.Y[[]byte]) error {
			var fw *floor.Writer
			var cols []column
			err := etl.ConsumeContext(ctx, it, func(r Row) error {
				if fw == nil {
					def, c := drowSchemaFrom(r)
					cols = c
					pw := goparquet.NewFileWriter(etlio.YieldWriter(yield),
						goparquet.WithSchemaDefinition(def),
						goparquet.WithCompressionCodec(parquet.CompressionCodec_SNAPPY),
					)
					fw = floor.NewWriter(pw)
				}
				return fw.Write(&drowMarshaler{cols: cols, row: r})
			})
			if err != nil {
				return err
			}
			if fw == nil {
				return nil
			}
			// closes the underlying file writer too
			return fw.Close()
		},
		Close: it.Close,
	})
}
