// Package loader reads script sources for the script engines from strings,
// byte slices, files and HTTP endpoints.
package loader

import (
	"io"
	"net/url"
)

// Loader returns the content of one script. GetReader may be called more
// than once; every call returns a fresh reader that the caller closes.
type Loader interface {
	GetReader() (io.ReadCloser, error)
	GetSourceURL() *url.URL
}

// ReadAll returns the full content of the script behind l.
func ReadAll(l Loader) ([]byte, error) {
	if l == nil {
		return nil, ErrScriptNotAvailable
	}
	r, err := l.GetReader()
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	return io.ReadAll(r)
}
