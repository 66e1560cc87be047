package rightmove

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	defaultBaseURL = "https://www.rightmove.co.uk"
	requestTimeout = 30 * time.Second
	maxBodyBytes   = 8 << 20 // 8MB guard
)

// Client talks to rightmove's undocumented web API. The zero value is
// not usable; construct with NewClient.
type Client struct {
	baseURL string
	once    sync.Once
	http    *retryablehttp.Client
}

// NewClient returns a client for the public rightmove site.
func NewClient() *Client {
	return NewClientWithBaseURL(defaultBaseURL)
}

// NewClientWithBaseURL returns a client pointed at an alternative
// base, e.g. a local stub.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{baseURL: baseURL}
}

// httpClient lazily builds the shared connection pool. It is never
// mutated after first use, so concurrent requests share it without
// further locking.
func (c *Client) httpClient() *retryablehttp.Client {
	c.once.Do(func() {
		rc := retryablehttp.NewClient()
		rc.RetryMax = 0 // rightmove calls are never retried automatically
		rc.HTTPClient.Timeout = requestTimeout
		rc.Logger = nil
		c.http = rc
	})
	return c.http
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	setBrowserHeaders(req.Header)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("rightmove status %d for %s", resp.StatusCode, u)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > maxBodyBytes {
		return nil, errors.New("response body too large")
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	body, err := c.get(ctx, u)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// setBrowserHeaders applies the fixed browser-emulating headers that
// keep rightmove from blocking the client. Accept-Encoding is left to
// the transport so gzip decoding stays automatic.
func setBrowserHeaders(h http.Header) {
	h.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/62.0.3202.94 Safari/537.36")
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8")
	h.Set("Accept-Language", "en-US,en;q=0.9,lt;q=0.8,et;q=0.7,de;q=0.6")
}
