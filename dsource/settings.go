package dsource

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/stdiopt/vizdata/dexpr"
	"github.com/stdiopt/vizdata/dtable"
	"github.com/stdiopt/vizdata/etl/etlutil"
)

// URLs is one or more source urls, it decodes from a JSON string or an
// array of strings.
type URLs []string

// UnmarshalJSON accepts a string or an array of strings.
func (u *URLs) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*u = URLs{s}
		return nil
	}
	var ss []string
	if err := json.Unmarshal(data, &ss); err != nil {
		return fmt.Errorf("dataURL must be a string or a list of strings: %w", err)
	}
	*u = ss
	return nil
}

// Settings describes a data source as found in dashboard configurations.
type Settings struct {
	// DataURL with more than one url fetches every url and left joins them
	// on IDColumnName.
	DataURL  URLs   `json:"dataURL,omitempty"`
	FileType string `json:"fileType,omitempty"`
	// Delimiter of csv files, the first character is used.
	Delimiter      string                `json:"delimiter,omitempty"`
	ColumnsToArray []dtable.ColumnConfig `json:"columnsToArray,omitempty"`
	// Data holds inline rows, it takes precedence over DataURL.
	Data     []Row  `json:"data,omitempty"`
	DataPath string `json:"dataPath,omitempty"`

	APIMethod   string            `json:"apiMethod,omitempty"`
	APIHeaders  map[string]string `json:"apiHeaders,omitempty"`
	RequestBody json.RawMessage   `json:"requestBody,omitempty"`

	// Query is the statement run against sql sources, DataURL holds the
	// database url.
	Query string `json:"query,omitempty"`

	IDColumnName string `json:"idColumnName,omitempty"`
	// DataTransformation is only checked, rejected expressions fail Load
	// with a *dexpr.UnsafeExpressionError.
	DataTransformation string `json:"dataTransformation,omitempty"`
}

// options returns the fetch options of the settings, opts are applied
// first.
func (s Settings) options(opts []OptFunc) []OptFunc {
	ret := append([]OptFunc{}, opts...)
	if s.Delimiter != "" {
		r, _ := utf8.DecodeRuneInString(s.Delimiter)
		ret = append(ret, WithDelimiter(r))
	}
	if len(s.ColumnsToArray) > 0 {
		ret = append(ret, WithColumnsToArray(s.ColumnsToArray...))
	}
	if s.DataPath != "" {
		ret = append(ret, WithPath(s.DataPath))
	}
	if s.APIMethod != "" {
		ret = append(ret, WithMethod(s.APIMethod))
	}
	for k, v := range s.APIHeaders {
		ret = append(ret, WithHeader(k, v))
	}
	if len(s.RequestBody) > 0 {
		ret = append(ret, WithBody(s.RequestBody), WithHeader("Content-Type", "application/json"))
	}
	return ret
}

// Load produces the table described by s: inline data or the fetched
// sources, dispatching on FileType (csv, json, api, parquet, sql; csv when
// empty).
func Load(ctx context.Context, s Settings, opts ...OptFunc) (Table, error) {
	if s.DataTransformation != "" {
		if err := dexpr.Check(s.DataTransformation); err != nil {
			return nil, err
		}
	}
	if s.Data != nil {
		return dtable.ColumnsToArray(dtable.Table(s.Data), s.ColumnsToArray), nil
	}
	switch len(s.DataURL) {
	case 0:
		return nil, errors.New("dsource: settings require data or dataURL")
	case 1:
	default:
		srcs := make([]Settings, len(s.DataURL))
		for i, u := range s.DataURL {
			srcs[i] = s
			srcs[i].DataURL = URLs{u}
			srcs[i].DataTransformation = ""
		}
		return FetchAll(ctx, s.IDColumnName, srcs, opts...)
	}

	url := s.DataURL[0]
	fopts := s.options(opts)
	switch s.FileType {
	case "json", "api":
		return FetchJSON(ctx, url, fopts...)
	case "parquet":
		return FetchParquet(ctx, url, fopts...)
	case "sql":
		if s.Query == "" {
			return nil, errors.New("dsource: sql sources require a query")
		}
		t, err := QuerySQL(ctx, url, s.Query)
		if err != nil {
			return nil, err
		}
		return dtable.ColumnsToArray(t, s.ColumnsToArray), nil
	default:
		return FetchCSV(ctx, url, fopts...)
	}
}

// FetchAll loads every source concurrently and left joins them on
// idColumn, the first source drives the rows of the result. The first
// failure cancels the remaining fetches.
func FetchAll(ctx context.Context, idColumn string, srcs []Settings, opts ...OptFunc) (Table, error) {
	if len(srcs) == 0 {
		return Table{}, nil
	}
	if len(srcs) > 1 && idColumn == "" {
		return nil, errors.New("dsource: joining sources requires an id column")
	}

	tables := make([]Table, len(srcs))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range srcs {
		i, s := i, s
		g.Go(func() error {
			t, err := Load(gctx, s, opts...)
			if err != nil {
				return errors.Wrapf(err, "source %d", i)
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	it := tables[0].Iter()
	for _, t := range tables[1:] {
		it = etlutil.JoinRows(it, t.Iter(), idColumn)
	}
	defer it.Close()
	return dtable.Collect(it)
}
