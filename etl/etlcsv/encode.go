package etlcsv

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/stdiopt/vizdata/etl"
	"github.com/stdiopt/vizdata/etl/etlio"
	"github.com/stdiopt/vizdata/util/conv"
)

type encodeOptions struct {
	Comma  rune
	Header bool
}

// EncodeOptFunc configures Encode.
type EncodeOptFunc func(*encodeOptions)

// WithEncodeComma sets the field delimiter, defaults to ','.
func WithEncodeComma(c rune) EncodeOptFunc {
	return func(o *encodeOptions) {
		o.Comma = c
	}
}

// WithEncodeHeader tells if the column names are written first, defaults to
// true.
func WithEncodeHeader(v bool) EncodeOptFunc {
	return func(o *encodeOptions) {
		o.Header = v
	}
}

func makeEncodeOptions(opts ...EncodeOptFunc) encodeOptions {
	o := encodeOptions{
		Comma:  ',',
		Header: true,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Encode consumes a drow.Row iterator and produces csv []byte. Columns are
// taken from the first row, later rows are written in that column order with
// missing fields left empty. Sequences are joined with ',' and nested rows
// written as JSON.
func Encode(it Iter, opts ...EncodeOptFunc) Iter {
	o := makeEncodeOptions(opts...)
	return etl.MakeGen(etl.Gen[[]byte]{
		Run: func(ctx context.Context, yield etl.Y[[]byte]) error {
			cw := csv.NewWriter(etlio.YieldWriter(yield))
			cw.Comma = o.Comma

			var cols []string
			err := etl.ConsumeContext(ctx, it, func(r Row) error {
				if cols == nil {
					cols = r.Columns()
					if o.Header {
						if err := cw.Write(cols); err != nil {
							return err
						}
					}
				}
				rec := make([]string, len(cols))
				for i, c := range cols {
					v, err := cell(r.Value(c))
					if err != nil {
						return fmt.Errorf("etlcsv: column %q: %w", c, err)
					}
					rec[i] = v
				}
				return cw.Write(rec)
			})
			if err != nil {
				return err
			}
			cw.Flush()
			return cw.Error()
		},
		Close: it.Close,
	})
}

func cell(v any) (string, error) {
	if r, ok := v.(Row); ok {
		data, err := json.Marshal(r)
		return string(data), err
	}
	return conv.ToString(v), nil
}
