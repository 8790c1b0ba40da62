// Package etlcloud provides etl iters based on gocloud.dev
package etlcloud

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"gocloud.dev/blob"
	// registered bucket schemes: file://, mem://, s3:// and gs://
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"

	"github.com/stdiopt/vizdata/etl"
	"github.com/stdiopt/vizdata/etl/etlio"
)

type getOptions struct {
	BufSize int
}

// GetOptFunc configures GetObject.
type GetOptFunc func(*getOptions)

// WithBufSize sets the size of the yielded chunks.
func WithBufSize(size int) GetOptFunc {
	return func(o *getOptions) {
		o.BufSize = size
	}
}

func makeGetOptions(opts ...GetOptFunc) getOptions {
	o := getOptions{
		BufSize: 8192,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// SplitURL splits an object url into the bucket url and the object key.
//
//	s3://bucket/dir/data.csv?region=x -> s3://bucket?region=x, dir/data.csv
//	file:///tmp/dir/data.csv          -> file:///tmp/dir, data.csv
func SplitURL(objURL string) (bucketURL, key string, err error) {
	u, err := url.Parse(objURL)
	if err != nil {
		return "", "", err
	}
	if u.Scheme == "" {
		return "", "", fmt.Errorf("etlcloud: missing scheme in %q", objURL)
	}
	var burl string
	switch u.Scheme {
	case "file":
		// the bucket is the directory of the file
		dir, base := path.Split(u.Path)
		burl = "file://" + u.Host + strings.TrimSuffix(dir, "/")
		key = base
	default:
		// in the form of '{scheme}://{host}/{key}'
		burl = fmt.Sprintf("%s://%s", u.Scheme, u.Host)
		key = strings.Trim(u.Path, "/")
	}
	if u.RawQuery != "" {
		burl += "?" + u.RawQuery
	}
	if key == "" {
		return "", "", fmt.Errorf("etlcloud: missing object key in %q", objURL)
	}
	return burl, key, nil
}

// GetObject opens the object at objURL and returns an iterator of its
// []byte chunks, Close closes both the reader and the bucket.
func GetObject(ctx context.Context, objURL string, opts ...GetOptFunc) etl.Iter {
	o := makeGetOptions(opts...)

	burl, key, err := SplitURL(objURL)
	if err != nil {
		return etl.ErrIter(err)
	}
	b, err := blob.OpenBucket(ctx, burl)
	if err != nil {
		return etl.ErrIter(err)
	}
	rd, err := b.NewReader(ctx, key, nil)
	if err != nil {
		b.Close() // nolint: errcheck
		return etl.ErrIter(err)
	}
	it := etlio.FromReadCloser(rd, etlio.WithBufSize(o.BufSize))
	return etl.MakeIter(etl.Custom[any]{
		Next: it.Next,
		Close: func() error {
			err := it.Close()
			if berr := b.Close(); err == nil {
				err = berr
			}
			return err
		},
	})
}
