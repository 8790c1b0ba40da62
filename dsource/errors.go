package dsource

import (
	"fmt"

	"github.com/pkg/errors"
)

// FetchError is a failure retrieving a source: transport, HTTP status, blob
// or database errors.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError is a malformed payload.
type ParseError struct {
	URL    string
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %s: %v", e.Format, e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// asParseError classifies decoding errors, errors already classified as
// fetch errors pass through.
func asParseError(url, format string) func(error) error {
	return func(err error) error {
		var ferr *FetchError
		if errors.As(err, &ferr) {
			return err
		}
		return &ParseError{URL: url, Format: format, Err: err}
	}
}

func asFetchError(url string) func(error) error {
	return func(err error) error {
		return &FetchError{URL: url, Err: err}
	}
}
