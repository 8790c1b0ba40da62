// Package etlcsv contains iterators that handle csv data.
package etlcsv

import (
	"context"
	"encoding/csv"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/stdiopt/vizdata/drow"
	"github.com/stdiopt/vizdata/etl"
	"github.com/stdiopt/vizdata/etl/etlio"
)

type (
	// Row is a drow.Row
	Row = drow.Row
	// Field is a drow.Field
	Field = drow.Field
	// Iter is a etl.Iter
	Iter = etl.Iter
)

type decodeOptions struct {
	// Comma is the field delimiter.
	Comma  rune
	Header bool
	Typed  bool
}

// DecodeOptFunc configures Decode.
type DecodeOptFunc func(*decodeOptions)

// WithDecodeComma sets the field delimiter, defaults to ','.
func WithDecodeComma(c rune) DecodeOptFunc {
	return func(o *decodeOptions) {
		o.Comma = c
	}
}

// WithDecodeHeader tells if the first record holds the column names,
// defaults to true.
func WithDecodeHeader(v bool) DecodeOptFunc {
	return func(o *decodeOptions) {
		o.Header = v
	}
}

// WithDecodeTyped enables value inference, numeric cells become float64,
// true/false become bool and empty cells become nil.
func WithDecodeTyped(v bool) DecodeOptFunc {
	return func(o *decodeOptions) {
		o.Typed = v
	}
}

func makeDecodeOptions(opts ...DecodeOptFunc) decodeOptions {
	o := decodeOptions{
		Comma:  ',',
		Header: true,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Decode returns an iterator that reads an etl.Iter of []byte and produces drow.Row
// Close will close the underlying iterator.
func Decode(it Iter, opts ...DecodeOptFunc) Iter {
	o := makeDecodeOptions(opts...)

	cr := csv.NewReader(etlio.AsReader(it))
	cr.Comma = o.Comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var cols []string
	return etl.MakeIter(etl.Custom[Row]{
		Next: func(ctx context.Context) (Row, error) {
			for {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				rec, err := cr.Read()
				if err != nil {
					return nil, err
				}
				if cols == nil {
					cols = make([]string, len(rec))
					for i, c := range rec {
						if !o.Header {
							// If no header we name columns as col1,col2
							cols[i] = fmt.Sprintf("col%d", i+1)
							continue
						}
						cols[i] = strings.TrimSpace(c)
					}
					if o.Header {
						continue
					}
				}
				if isBlank(rec) {
					continue
				}
				// Short records are padded with nil, extra cells are dropped.
				row := make(Row, len(cols))
				for i := range cols {
					row[i].Name = cols[i]
					if i < len(rec) {
						row[i].Value = o.value(rec[i])
					}
				}
				return row, nil
			}
		},
		Close: it.Close,
	})
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

var floatRE = regexp.MustCompile(`^\s*-?(\d+\.?|\.\d+|\d+\.\d+)([eE][-+]?\d+)?\s*$`)

func (o decodeOptions) value(s string) any {
	s = strings.TrimSpace(s)
	if !o.Typed {
		return s
	}
	return Infer(s)
}

// Infer converts a csv cell into a float64, bool or nil when it looks like
// one, other cells are returned as is.
func Infer(s string) any {
	switch s {
	case "":
		return nil
	case "true", "TRUE":
		return true
	case "false", "FALSE":
		return false
	}
	if !floatRE.MatchString(s) {
		return s
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return s
	}
	return f
}
