package loader

import (
	"bytes"
	"fmt"
	"io"
	"net/url"

	"github.com/robbyt/go-formula/internal/helpers"
)

// FromBytes serves script source or a WASM binary held in memory.
type FromBytes struct {
	content   []byte
	sourceURL *url.URL
}

// NewFromBytes rejects empty content, and text content that is only
// whitespace. Binary content is accepted as is.
func NewFromBytes(content []byte) (*FromBytes, error) {
	if len(content) == 0 || (!isBinary(content) && len(bytes.TrimSpace(content)) == 0) {
		return nil, fmt.Errorf("%w: %w", ErrScriptNotAvailable, ErrInputEmpty)
	}

	u, err := url.Parse("bytes://inline/" + helpers.ShortSHA256(content))
	if err != nil {
		return nil, fmt.Errorf("failed to create source URL: %w", err)
	}
	return &FromBytes{content: content, sourceURL: u}, nil
}

func (l *FromBytes) String() string {
	return fmt.Sprintf("loader.FromBytes{Bytes: %d}", len(l.content))
}

func (l *FromBytes) GetReader() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(l.content)), nil
}

// GetSourceURL returns a bytes:// URL derived from the content hash.
func (l *FromBytes) GetSourceURL() *url.URL {
	return l.sourceURL
}

// isBinary reports control bytes other than tab, newline and carriage return.
func isBinary(data []byte) bool {
	for _, b := range data {
		if b < 32 && b != '\n' && b != '\r' && b != '\t' {
			return true
		}
	}
	return false
}
