package loader

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"time"
)

const userAgent = "go-formula/http-loader"

// HTTPOptions configures a FromHTTP loader. Start from DefaultHTTPOptions
// and chain the With methods.
//
// Example:
//
//	opts := loader.DefaultHTTPOptions().
//		WithTimeout(5 * time.Second).
//		WithHeader("Authorization", "Bearer "+token)
//	l, err := loader.NewFromHTTPWithOptions("https://example.com/pricing.star", opts)
type HTTPOptions struct {
	Timeout   time.Duration
	TLSConfig *tls.Config

	// Username is sent with Password as HTTP basic auth when not empty.
	Username string
	Password string

	Headers map[string]string
}

// DefaultHTTPOptions returns a 30 second timeout and no authentication.
func DefaultHTTPOptions() *HTTPOptions {
	return &HTTPOptions{
		Timeout: 30 * time.Second,
		Headers: make(map[string]string),
	}
}

// WithTimeout returns a copy of o with the request timeout replaced.
func (o *HTTPOptions) WithTimeout(d time.Duration) *HTTPOptions {
	c := o.clone()
	c.Timeout = d
	return c
}

// WithBasicAuth returns a copy of o sending basic auth credentials.
func (o *HTTPOptions) WithBasicAuth(username, password string) *HTTPOptions {
	c := o.clone()
	c.Username, c.Password = username, password
	return c
}

// WithHeader returns a copy of o sending one more request header.
func (o *HTTPOptions) WithHeader(key, value string) *HTTPOptions {
	c := o.clone()
	c.Headers[key] = value
	return c
}

// WithTLSConfig returns a copy of o using cfg for HTTPS connections.
func (o *HTTPOptions) WithTLSConfig(cfg *tls.Config) *HTTPOptions {
	c := o.clone()
	c.TLSConfig = cfg
	return c
}

func (o *HTTPOptions) clone() *HTTPOptions {
	c := *o
	c.Headers = make(map[string]string, len(o.Headers))
	maps.Copy(c.Headers, o.Headers)
	return &c
}

// FromHTTP fetches a script from an http or https URL on every GetReader
// call.
type FromHTTP struct {
	url       string
	sourceURL *url.URL
	options   *HTTPOptions
	client    *http.Client
}

// NewFromHTTP creates an HTTP loader with DefaultHTTPOptions.
func NewFromHTTP(rawURL string) (*FromHTTP, error) {
	return NewFromHTTPWithOptions(rawURL, DefaultHTTPOptions())
}

// NewFromHTTPWithOptions creates an HTTP loader. A nil options value means
// DefaultHTTPOptions.
func NewFromHTTPWithOptions(rawURL string, options *HTTPOptions) (*FromHTTP, error) {
	sourceURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse URL: %w", err)
	}
	if sourceURL.Scheme != "http" && sourceURL.Scheme != "https" {
		return nil, fmt.Errorf("%w: %s", ErrSchemeUnsupported, rawURL)
	}
	if options == nil {
		options = DefaultHTTPOptions()
	}

	client := &http.Client{Timeout: options.Timeout}
	if options.TLSConfig != nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = options.TLSConfig
		client.Transport = transport
	}

	return &FromHTTP{
		url:       rawURL,
		sourceURL: sourceURL,
		options:   options.clone(),
		client:    client,
	}, nil
}

func (l *FromHTTP) String() string {
	return fmt.Sprintf("loader.FromHTTP{URL: %s}", l.url)
}

// GetReader fetches the script with a background context.
func (l *FromHTTP) GetReader() (io.ReadCloser, error) {
	return l.GetReaderWithContext(context.Background())
}

// GetReaderWithContext fetches the script. Any status outside 2xx is
// ErrScriptNotAvailable.
func (l *FromHTTP) GetReaderWithContext(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range l.options.Headers {
		req.Header.Set(k, v)
	}
	if l.options.Username != "" {
		req.SetBasicAuth(l.options.Username, l.options.Password)
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: HTTP %s", ErrScriptNotAvailable, resp.Status)
	}
	return resp.Body, nil
}

// GetSourceURL returns the URL the script is fetched from.
func (l *FromHTTP) GetSourceURL() *url.URL {
	return l.sourceURL
}
