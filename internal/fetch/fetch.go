// Package fetch provides blocking HTTP GET helpers with a fixed timeout
// and custom headers, used to import web pages and images.
package fetch

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Client performs bounded, blocking GET requests.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// New creates a client. A non-positive timeout falls back to DefaultTimeout.
func New(timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// Text fetches url and returns the decoded response body as a string.
// Browser-like Accept headers are sent by default; headers overrides or
// extends them.
func (c *Client) Text(ctx context.Context, url string, headers map[string]string) (string, error) {
	defaults := map[string]string{
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
	}
	for k, v := range headers {
		defaults[k] = v
	}
	body, _, err := c.get(ctx, url, defaults)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Bytes fetches url and returns the raw body and the response content type.
func (c *Client) Bytes(ctx context.Context, url string, headers map[string]string) ([]byte, string, error) {
	return c.get(ctx, url, headers)
}

// DataURI fetches url and returns the body as a data: URI. The MIME type
// comes from the response Content-Type, sniffed from the payload when the
// server does not send one.
func (c *Client) DataURI(ctx context.Context, url string) (string, error) {
	body, contentType, err := c.get(ctx, url, nil)
	if err != nil {
		return "", err
	}
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(body)
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(body), nil
}

func (c *Client) get(ctx context.Context, url string, headers map[string]string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("fetching %s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading response from %s: %w", url, err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}
