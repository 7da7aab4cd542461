package loader

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/robbyt/go-formula/internal/helpers"
)

// FromString serves script source held in memory.
type FromString struct {
	content   string
	sourceURL *url.URL
}

// NewFromString trims content and rejects it when nothing is left.
func NewFromString(content string) (*FromString, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: %w", ErrScriptNotAvailable, ErrInputEmpty)
	}

	u, err := url.Parse("string://inline/" + helpers.ShortSHA256([]byte(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to create source URL: %w", err)
	}
	return &FromString{content: content, sourceURL: u}, nil
}

func (l *FromString) String() string {
	return fmt.Sprintf("loader.FromString{Chars: %d}", len(l.content))
}

func (l *FromString) GetReader() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(l.content)), nil
}

// GetSourceURL returns a string:// URL derived from the content hash.
func (l *FromString) GetSourceURL() *url.URL {
	return l.sourceURL
}
