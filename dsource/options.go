package dsource

import (
	"net/http"

	"github.com/go-kit/log"

	"github.com/stdiopt/vizdata/dtable"
	"github.com/stdiopt/vizdata/etl/etlmetrics"
)

type options struct {
	Delimiter      rune
	NoHeader       bool
	ColumnsToArray []dtable.ColumnConfig
	Path           string
	Method         string
	Body           []byte
	Header         http.Header
	Client         *http.Client
	ZipPattern     string
	Logger         log.Logger
	Metrics        *etlmetrics.Metrics
}

// OptFunc configures the fetch functions.
type OptFunc func(*options)

// WithDelimiter sets the csv field delimiter, defaults to ','.
func WithDelimiter(d rune) OptFunc {
	return func(o *options) {
		o.Delimiter = d
	}
}

// WithNoHeader reads csv files without a header row, columns are named
// col1, col2...
func WithNoHeader() OptFunc {
	return func(o *options) {
		o.NoHeader = true
	}
}

// WithColumnsToArray splits the configured columns of the fetched rows.
func WithColumnsToArray(cfgs ...dtable.ColumnConfig) OptFunc {
	return func(o *options) {
		o.ColumnsToArray = append(o.ColumnsToArray, cfgs...)
	}
}

// WithPath selects JSON rows with a JSONPath expression.
func WithPath(p string) OptFunc {
	return func(o *options) {
		o.Path = p
	}
}

// WithMethod sets the http method of API requests.
func WithMethod(m string) OptFunc {
	return func(o *options) {
		o.Method = m
	}
}

// WithBody sets the body of API requests.
func WithBody(b []byte) OptFunc {
	return func(o *options) {
		o.Body = b
	}
}

// WithHeader adds a header to http requests.
func WithHeader(key, value string) OptFunc {
	return func(o *options) {
		if o.Header == nil {
			o.Header = http.Header{}
		}
		o.Header.Add(key, value)
	}
}

// WithClient sets the http client, defaults to http.DefaultClient.
func WithClient(c *http.Client) OptFunc {
	return func(o *options) {
		o.Client = c
	}
}

// WithZipEntries reads the source as a zip archive and decodes every entry
// whose base name matches pattern (ie: "*.csv").
func WithZipEntries(pattern string) OptFunc {
	return func(o *options) {
		o.ZipPattern = pattern
	}
}

// WithLogger sets the logger, defaults to a no-op logger.
func WithLogger(l log.Logger) OptFunc {
	return func(o *options) {
		o.Logger = l
	}
}

// WithMetrics records fetch metrics in m.
func WithMetrics(m *etlmetrics.Metrics) OptFunc {
	return func(o *options) {
		o.Metrics = m
	}
}

func makeOptions(opts ...OptFunc) options {
	o := options{
		Delimiter: ',',
		Method:    http.MethodGet,
		Client:    http.DefaultClient,
		Logger:    log.NewNopLogger(),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
