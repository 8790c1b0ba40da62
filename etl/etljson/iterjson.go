// Package etljson provides iterators to handle json.
package etljson

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/stdiopt/vizdata/drow"
	"github.com/stdiopt/vizdata/etl"
	"github.com/stdiopt/vizdata/etl/etlio"
)

type (
	// Iter alias to etl.Iter
	Iter = etl.Iter
	// Row alias to drow.Row
	Row = drow.Row
)

// Decode returns an iterator that consumes bytes from a source iterator,
// unmarshal, and yield data of type T
func Decode[T any](it Iter) Iter {
	dec := json.NewDecoder(etlio.AsReader(it))
	return etl.MakeIter(etl.Custom[T]{
		Next: func(context.Context) (T, error) {
			var v T
			if !dec.More() {
				return v, io.EOF
			}

			err := dec.Decode(&v)
			return v, err
		},
		Close: it.Close,
	})
}

// Encode encodes the values of it as the elements of a single JSON array
// and returns an iterator that yields its []byte chunks.
func Encode(it Iter) Iter {
	return etl.MakeGen(etl.Gen[[]byte]{
		Run: func(ctx context.Context, yield etl.Y[[]byte]) error {
			sep := []byte{'['}
			err := etl.ConsumeContext(ctx, it, func(v any) error {
				data, err := json.Marshal(v)
				if err != nil {
					return err
				}
				if err := yield(append(sep, data...)); err != nil {
					return err
				}
				sep = []byte{','}
				return nil
			})
			if err != nil {
				return err
			}
			if sep[0] == '[' {
				return yield([]byte("[]"))
			}
			return yield([]byte{']'})
		},
		Close: it.Close,
	})
}

type rowsOptions struct {
	Path string
}

// RowsOptFunc configures DecodeRows.
type RowsOptFunc func(*rowsOptions)

// WithPath selects the rows with a JSONPath expression (ie: "$.data.items"),
// the selection must be an array of objects or the objects themselves.
// Selected objects have their fields sorted by name.
func WithPath(path string) RowsOptFunc {
	return func(o *rowsOptions) {
		o.Path = path
	}
}

func makeRowsOptions(opts ...RowsOptFunc) rowsOptions {
	o := rowsOptions{}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// DecodeRows consumes a []byte iterator holding a JSON document and
// produces drow.Row, without a path the document must be an array of
// objects and it is streamed keeping the field order of each object.
func DecodeRows(it Iter, opts ...RowsOptFunc) Iter {
	o := makeRowsOptions(opts...)
	if o.Path != "" {
		return decodePath(it, o.Path)
	}
	return etl.MakeGen(etl.Gen[Row]{
		Run: func(ctx context.Context, yield etl.Y[Row]) error {
			return drow.DecodeJSONArray(etlio.AsReaderContext(ctx, it), func(r Row) error {
				return yield(r)
			})
		},
		Close: it.Close,
	})
}

func decodePath(it Iter, path string) Iter {
	return etl.MakeGen(etl.Gen[Row]{
		Run: func(ctx context.Context, yield etl.Y[Row]) error {
			x, err := jp.ParseString(path)
			if err != nil {
				return fmt.Errorf("etljson: invalid path %q: %w", path, err)
			}
			data, err := etlio.ReadAll(ctx, it)
			if err != nil {
				return err
			}
			doc, err := oj.Parse(data)
			if err != nil {
				return err
			}
			res := x.Get(doc)
			if len(res) == 1 {
				if arr, ok := res[0].([]any); ok {
					res = arr
				}
			}
			for _, v := range res {
				m, ok := v.(map[string]any)
				if !ok {
					return fmt.Errorf("etljson: path %q: expected object, got %T", path, v)
				}
				if err := yield(drow.FromMap(normalize(m).(map[string]any))); err != nil {
					return err
				}
			}
			return nil
		},
		Close: it.Close,
	})
}

// normalize converts ojg integers to float64 so values match what
// encoding/json produces.
func normalize(v any) any {
	switch v := v.(type) {
	case int64:
		return float64(v)
	case map[string]any:
		for k, e := range v {
			v[k] = normalize(e)
		}
		return v
	case []any:
		for i, e := range v {
			v[i] = normalize(e)
		}
		return v
	default:
		return v
	}
}
