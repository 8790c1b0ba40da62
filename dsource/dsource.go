// Package dsource fetches and parses external data sources into tables.
//
// Sources are addressed by URL: http(s) urls are requested with net/http,
// any other scheme (file://, s3://, gs://, mem://) is opened as a
// gocloud.dev blob. Urls ending in .gz are gunzipped on the fly.
//
// Failures are returned as *FetchError when the source could not be
// retrieved and as *ParseError when its payload is malformed, nothing is
// retried.
package dsource

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/stdiopt/vizdata/drow"
	"github.com/stdiopt/vizdata/dtable"
	"github.com/stdiopt/vizdata/etl"
	"github.com/stdiopt/vizdata/etl/etlcsv"
	"github.com/stdiopt/vizdata/etl/etlgzip"
	"github.com/stdiopt/vizdata/etl/etlhttp"
	"github.com/stdiopt/vizdata/etl/etljson"
	"github.com/stdiopt/vizdata/etl/etlzip"
	"github.com/stdiopt/vizdata/etl/x/etlcloud"
	"github.com/stdiopt/vizdata/etl/x/etlparquet"
)

type (
	// Table is a dtable.Table
	Table = dtable.Table
	// Row is a drow.Row
	Row = drow.Row
)

// FetchCSV retrieves a delimited text source, values are typed: numeric
// cells become float64, true/false become bool and empty cells nil. Empty
// lines are skipped.
func FetchCSV(ctx context.Context, url string, opts ...OptFunc) (Table, error) {
	o := makeOptions(opts...)
	csvOpts := []etlcsv.DecodeOptFunc{
		etlcsv.WithDecodeComma(o.Delimiter),
		etlcsv.WithDecodeHeader(!o.NoHeader),
		etlcsv.WithDecodeTyped(true),
	}
	return o.fetch(ctx, url, "csv", func(src etl.Iter) etl.Iter {
		return etlcsv.Decode(src, csvOpts...)
	})
}

// FetchJSON retrieves a JSON source holding an array of objects, or any
// document when WithPath selects the rows.
func FetchJSON(ctx context.Context, url string, opts ...OptFunc) (Table, error) {
	o := makeOptions(opts...)
	var jsonOpts []etljson.RowsOptFunc
	if o.Path != "" {
		jsonOpts = append(jsonOpts, etljson.WithPath(o.Path))
	}
	return o.fetch(ctx, url, "json", func(src etl.Iter) etl.Iter {
		return etljson.DecodeRows(src, jsonOpts...)
	})
}

// FetchParquet retrieves a parquet file.
func FetchParquet(ctx context.Context, url string, opts ...OptFunc) (Table, error) {
	o := makeOptions(opts...)
	return o.fetch(ctx, url, "parquet", etlparquet.Decode)
}

// fetch opens the source, decodes it with decode, once per matched entry
// when reading zip archives, and collects the rows.
func (o options) fetch(ctx context.Context, url, format string, decode func(etl.Iter) etl.Iter) (Table, error) {
	start := time.Now()

	src := o.open(ctx, url)
	var it etl.Iter
	if o.ZipPattern != "" {
		it = etlzip.EachFile(src, o.ZipPattern, func(ctx context.Context, e etlzip.Entry, yield etl.Y[Row]) error {
			dec := decode(e)
			defer dec.Close()
			return etl.ConsumeContext(ctx, dec, func(r Row) error {
				return yield(r)
			})
		})
	} else {
		it = decode(src)
	}
	it = etl.WrapErr(it, asParseError(url, format))
	it = o.Metrics.Count(it, format)
	defer it.Close()

	rows, err := dtable.Collect(it)
	if err != nil {
		level.Error(o.Logger).Log("msg", "fetch failed", "url", redact(url), "format", format, "err", err) // nolint: errcheck
		return nil, err
	}
	level.Debug(o.Logger).Log("msg", "fetched", "url", redact(url), "format", format, "rows", len(rows), "took", time.Since(start)) // nolint: errcheck

	return dtable.ColumnsToArray(rows, o.ColumnsToArray), nil
}

// open returns a []byte iterator of the source, errors are *FetchError.
func (o options) open(ctx context.Context, rawURL string) etl.Iter {
	u, err := url.Parse(rawURL)
	if err != nil {
		return etl.ErrIter(&FetchError{URL: rawURL, Err: errors.Wrap(err, "invalid url")})
	}

	var it etl.Iter
	switch u.Scheme {
	case "http", "https":
		it = etlhttp.Get(ctx, rawURL,
			etlhttp.WithGetMethod(o.Method),
			etlhttp.WithGetBody(o.Body),
			etlhttp.WithGetHeader(o.Header),
			etlhttp.WithGetClient(o.Client),
		)
	case "":
		return etl.ErrIter(&FetchError{URL: rawURL, Err: errors.New("missing url scheme")})
	default:
		it = etlcloud.GetObject(ctx, rawURL)
	}
	it = etl.WrapErr(it, asFetchError(redact(rawURL)))

	if strings.HasSuffix(u.Path, ".gz") {
		it = etlgzip.Gunzip(it)
	}
	return it
}

// redact hides url credentials from logs and errors.
func redact(s string) string {
	if u, err := url.Parse(s); err == nil {
		return u.Redacted()
	}
	scheme, rest, ok := strings.Cut(s, "://")
	if !ok {
		return s
	}
	if i := strings.LastIndex(rest, "@"); i >= 0 {
		return scheme + "://xxxxx@" + rest[i+1:]
	}
	return s
}
