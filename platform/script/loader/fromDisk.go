package loader

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/robbyt/go-formula/internal/helpers"
)

// FromDisk serves a script file. The file is opened on every GetReader call,
// so edits are picked up when an engine compiles again.
type FromDisk struct {
	path      string
	sourceURL *url.URL
}

// NewFromDisk accepts an absolute path, optionally prefixed with file://.
func NewFromDisk(path string) (*FromDisk, error) {
	if strings.Contains(path, "://") && !strings.HasPrefix(path, "file://") {
		return nil, fmt.Errorf("%w: %s", ErrSchemeUnsupported, path)
	}
	path = strings.TrimPrefix(path, "file://")
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: %w", ErrScriptNotAvailable, ErrInputEmpty)
	}
	if !filepath.IsAbs(path) {
		return nil, fmt.Errorf("%w: relative path %q", ErrScriptNotAvailable, path)
	}

	path = filepath.Clean(path)
	if path == string(filepath.Separator) {
		return nil, fmt.Errorf("%w: %q is not a file", ErrScriptNotAvailable, path)
	}
	return &FromDisk{
		path:      path,
		sourceURL: &url.URL{Scheme: "file", Path: filepath.ToSlash(path)},
	}, nil
}

func (l *FromDisk) String() string {
	r, err := l.GetReader()
	if err != nil {
		return fmt.Sprintf("loader.FromDisk{Path: %s}", l.path)
	}
	defer func() { _ = r.Close() }()

	sum, err := helpers.SHA256Reader(r)
	if err != nil {
		return fmt.Sprintf("loader.FromDisk{Path: %s}", l.path)
	}
	return fmt.Sprintf("loader.FromDisk{Path: %s, SHA256: %s}", l.path, sum[:8])
}

func (l *FromDisk) GetReader() (io.ReadCloser, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScriptNotAvailable, err)
	}
	return f, nil
}

// GetSourceURL returns the file:// URL of the script.
func (l *FromDisk) GetSourceURL() *url.URL {
	return l.sourceURL
}
