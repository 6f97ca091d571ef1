package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"
)

// ErrInvalidURL marks a locator the caller supplied that cannot be fetched.
// The API maps it to a client error rather than a server-side failure.
var ErrInvalidURL = errors.New("invalid document url")

// Fetcher downloads a document with a bounded size and timeout and hands the
// bytes to the parser matching its format.
type Fetcher struct {
	httpClient *http.Client
	maxBytes   int64
}

func NewFetcher(timeout time.Duration, maxBytes int64) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		maxBytes:   maxBytes,
	}
}

// Fetch downloads rawURL and returns its page text. Any transport error,
// non-success status, or unreadable document aborts with an error; there are
// no retries.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch document: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("document exceeds max size (%d bytes)", f.maxBytes)
	}

	name := path.Base(u.Path)
	doc, err := ForContent(resp.Header.Get("Content-Type"), name).Parse(data, name)
	if err != nil {
		return nil, fmt.Errorf("extract document text: %w", err)
	}
	return doc, nil
}

// Close releases resources.
func (f *Fetcher) Close() {
	f.httpClient.CloseIdleConnections()
}
