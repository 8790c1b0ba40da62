// Package etlhttp contains iterators that handle http.
package etlhttp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/stdiopt/vizdata/etl"
	"github.com/stdiopt/vizdata/etl/etlio"
)

type (
	// Iter is an etl.Iter
	Iter = etl.Iter
)

// StatusError is returned when the server answers with a non 2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("etlhttp: %s: http status code: %d - %v", e.URL, e.StatusCode, e.Status)
}

type getOptions struct {
	BufSize int
	Method  string
	Body    []byte
	Header  http.Header
	Client  *http.Client
}

// GetOptFunc configures Get.
type GetOptFunc func(*getOptions)

// WithGetBufSize sets the size of the yielded chunks.
func WithGetBufSize(size int) GetOptFunc {
	return func(o *getOptions) {
		o.BufSize = size
	}
}

// WithGetHeader adds headers to the request.
func WithGetHeader(header http.Header) GetOptFunc {
	return func(o *getOptions) {
		if o.Header == nil {
			o.Header = make(http.Header)
		}
		for k, v := range header {
			o.Header[k] = append(o.Header[k], v...)
		}
	}
}

// WithGetMethod sets the request method, defaults to GET.
func WithGetMethod(method string) GetOptFunc {
	return func(o *getOptions) {
		o.Method = method
	}
}

// WithGetBody sets the request body.
func WithGetBody(body []byte) GetOptFunc {
	return func(o *getOptions) {
		o.Body = body
	}
}

// WithGetClient sets the client used to perform the request, defaults to
// http.DefaultClient.
func WithGetClient(c *http.Client) GetOptFunc {
	return func(o *getOptions) {
		o.Client = c
	}
}

func makeGetOptions(opts ...GetOptFunc) getOptions {
	o := getOptions{
		BufSize: 8192,
		Method:  http.MethodGet,
		Client:  http.DefaultClient,
	}

	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func (g *getOptions) newRequest(ctx context.Context, url string) (*http.Request, error) {
	var body io.Reader
	if g.Body != nil {
		body = bytes.NewReader(g.Body)
	}
	req, err := http.NewRequestWithContext(ctx, g.Method, url, body)
	if err != nil {
		return nil, err
	}
	for k, v := range g.Header {
		req.Header[k] = v
	}
	return req, nil
}

// Get performs the request and returns an iterator of the response body
// chunks, the request is bound to ctx.
func Get(ctx context.Context, url string, opts ...GetOptFunc) Iter {
	o := makeGetOptions(opts...)

	req, err := o.newRequest(ctx, url)
	if err != nil {
		return etl.ErrIter(fmt.Errorf("etlhttp.Get: error creating request: %w", err))
	}

	res, err := o.Client.Do(req)
	if err != nil {
		return etl.ErrIter(fmt.Errorf("etlhttp.Get: error calling request: %w", err))
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		res.Body.Close() // nolint: errcheck
		return etl.ErrIter(&StatusError{
			URL:        url,
			StatusCode: res.StatusCode,
			Status:     res.Status,
		})
	}

	return etlio.FromReadCloser(res.Body, etlio.WithBufSize(o.BufSize))
}
