package dsource

import (
	"context"
	"io"
	"time"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/stdiopt/vizdata/etl"
	"github.com/stdiopt/vizdata/etl/etlcsv"
	"github.com/stdiopt/vizdata/etl/etlio"
	"github.com/stdiopt/vizdata/etl/etljson"
	"github.com/stdiopt/vizdata/etl/x/etlparquet"
)

// WriteCSV exports t to w as delimited text, WithDelimiter and WithNoHeader
// apply. Columns are those of the first row.
func WriteCSV(ctx context.Context, w io.Writer, t Table, opts ...OptFunc) error {
	o := makeOptions(opts...)
	csvOpts := []etlcsv.EncodeOptFunc{
		etlcsv.WithEncodeComma(o.Delimiter),
		etlcsv.WithEncodeHeader(!o.NoHeader),
	}
	return o.write(ctx, w, t, "csv", func(it etl.Iter) etl.Iter {
		return etlcsv.Encode(it, csvOpts...)
	})
}

// WriteJSON exports t to w as a JSON array of objects, field order is kept.
func WriteJSON(ctx context.Context, w io.Writer, t Table, opts ...OptFunc) error {
	o := makeOptions(opts...)
	return o.write(ctx, w, t, "json", etljson.Encode)
}

// WriteParquet exports t to w as a parquet file with the schema of the first
// row, nothing is written for an empty table.
func WriteParquet(ctx context.Context, w io.Writer, t Table, opts ...OptFunc) error {
	o := makeOptions(opts...)
	return o.write(ctx, w, t, "parquet", etlparquet.Encode)
}

func (o options) write(ctx context.Context, w io.Writer, t Table, format string, encode func(etl.Iter) etl.Iter) error {
	start := time.Now()
	stage := "write_" + format

	it := encode(t.Iter())
	defer it.Close()

	err := etlio.WriteTo(ctx, it, w)
	o.Metrics.Observe(stage, start, err)
	if err != nil {
		level.Error(o.Logger).Log("msg", "write failed", "format", format, "err", err) // nolint: errcheck
		return errors.Wrapf(err, "write %s", format)
	}
	o.Metrics.Add(stage, len(t))
	level.Debug(o.Logger).Log("msg", "written", "format", format, "rows", len(t), "took", time.Since(start)) // nolint: errcheck
	return nil
}
