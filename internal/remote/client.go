// Package remote implements the HTTP side of asset resolution: building the
// lookup URL and classifying the outcome of a single GET.
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/arloliu/arhttp/internal/types"
)

// DefaultMaxSize caps the size of a resolved location read from a response body.
const DefaultMaxSize = 16 * 1024 * 1024

// Client issues lookup requests. It holds no per-request state and is safe
// for concurrent use as long as the underlying *http.Client is.
type Client struct {
	HTTP    *http.Client
	MaxSize int64 // Max size in bytes to read (default: 16MB)
}

// NewClient creates a new Client. A nil httpClient means http.DefaultClient.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		HTTP:    httpClient,
		MaxSize: DefaultMaxSize,
	}
}

// Get performs exactly one GET against url and returns the response body
// verbatim when the status is 200.
//
// Failures are reported as *types.TransportError when no response was
// obtained, or *types.StatusError for any other status code.
func (c *Client) Get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &types.TransportError{URL: url, Err: err}
	}

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}

	resp, err := hc.Do(req)
	if err != nil {
		return "", &types.TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	limit := c.MaxSize
	if limit <= 0 {
		limit = DefaultMaxSize
	}

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, limit))

		return "", &types.StatusError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Reason:     http.StatusText(resp.StatusCode),
		}
	}

	// Read with limit + 1 to detect overflow
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return "", &types.TransportError{URL: url, Err: err}
	}

	if int64(len(data)) > limit {
		return "", &types.TransportError{
			URL: url,
			Err: fmt.Errorf("resolved location exceeds maximum size of %d bytes", limit),
		}
	}

	return string(data), nil
}
