package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const (
	baseURL        = "https://hacker-news.firebaseio.com/v0"
	requestTimeout = 10 * time.Second
	userAgent      = "hnpanel/1.0"
)

// Doer is the HTTP capability the client needs. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the HN Firebase API client.
type Client struct {
	http    Doer
	baseURL string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

// WithTimeout sets the per-request timeout. It only applies when the
// configured client is an *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if hc, ok := c.http.(*http.Client); ok && d > 0 {
			hc.Timeout = d
		}
	}
}

// WithBaseURL points the client at another API root. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// NewClient creates a new HN API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: requestTimeout},
		baseURL: baseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get fetches a URL and decodes the JSON response into dst. Every failure
// is returned as a *NetworkError tagged with op.
func (c *Client) get(ctx context.Context, op, url string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &NetworkError{Op: op, URL: url, Err: errors.Wrap(err, "creating request")}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: op, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &NetworkError{Op: op, URL: url, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &NetworkError{Op: op, URL: url, Err: errors.Wrap(err, "decoding response")}
	}
	return nil
}

// GetItem fetches a single item by ID. The API answers unknown IDs with
// null, which decodes to a zero Item.
func (c *Client) GetItem(ctx context.Context, id int) (*Item, error) {
	url := fmt.Sprintf("%s/item/%d.json", c.baseURL, id)
	var item Item
	if err := c.get(ctx, "item", url, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
