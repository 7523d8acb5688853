// Package page provides the outbound page-fetch capability and recipe
// title extraction used by the sync pipeline.
package page

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Recipe sites routinely block default Go user agents, so requests
// identify as a desktop browser.
const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

const defaultTimeout = 15 * time.Second

// Fetcher is the page-fetch capability consumed by the pipeline. A failed
// fetch is reported as an error; callers degrade rather than abort.
type Fetcher interface {
	// Fetch performs a GET and returns the response body as text.
	Fetch(ctx context.Context, url string) (string, error)

	// FinalURL follows redirects without reading the body and returns the
	// final location with tracking query params and fragments removed.
	FinalURL(ctx context.Context, url string) (string, error)
}

// Client is the HTTP implementation of Fetcher.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent overrides the default browser user agent.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a page fetch client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch performs a GET and returns the response body.
func (c *Client) Fetch(ctx context.Context, rawurl string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", rawurl, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", rawurl, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetching %s: HTTP %d", rawurl, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", rawurl, err)
	}
	return string(body), nil
}

// FinalURL follows tracking redirects (MailChimp and friends) via HEAD and
// returns the destination stripped of query params, fragment, and any
// trailing slash.
func (c *Client) FinalURL(ctx context.Context, rawurl string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawurl, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", rawurl, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", rawurl, err)
	}
	resp.Body.Close()

	return CleanURL(resp.Request.URL), nil
}

// CleanURL renders a URL without query params, fragment, or trailing slash.
func CleanURL(u *url.URL) string {
	clean := u.Scheme + "://" + u.Host + u.Path
	return strings.TrimRight(clean, "/")
}
