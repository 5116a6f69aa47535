// Package client is the HTTP adapter behind the pkg/state stores. It speaks
// the API's response envelope, turns error bodies into readable reasons, and
// funnels every 401 through a single session-expired hook.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fitstack/fitstack/pkg/state"
)

// APIError is a non-2xx response. Reason is the best human-readable message
// that could be extracted from the body.
type APIError struct {
	StatusCode int
	Reason     string
}

func (e *APIError) Error() string {
	return e.Reason
}

// SessionExpired reports whether the failure was a 401. The store checks
// this to keep the session-expired signal out of per-resource error
// display; the unauthorized hook owns the response.
func (e *APIError) SessionExpired() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// Client issues authenticated requests against one API base URL.
type Client struct {
	baseURL        string
	http           *http.Client
	token          func() string
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenSource sets the bearer token supplier, called per request so a
// refreshed token is picked up without rebuilding the client.
func WithTokenSource(fn func() string) Option {
	return func(c *Client) { c.token = fn }
}

// WithOnUnauthorized sets the hook invoked on every 401, regardless of
// which resource produced it. Typical use is clearing the stored session
// and redirecting to login.
func WithOnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New builds a client for baseURL, e.g. "https://api.example.com/v1".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// reason extracts a display message from an error body: the body's
// "message" field when present, the raw body text otherwise, and the
// fallback when the body is empty.
func reason(body []byte, fallback string) string {
	var wire struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &wire); err == nil && wire.Message != "" {
		return wire.Message
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fallback
}

// do performs one request. A non-nil in is sent as JSON; a non-nil out
// receives the decoded response body. op names the operation for fallback
// error messages ("failed to fetch workouts").
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any, op string) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		body = bytes.NewReader(buf)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		raw, _ := io.ReadAll(res.Body)
		return &APIError{StatusCode: res.StatusCode, Reason: reason(raw, "session expired")}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		raw, _ := io.ReadAll(res.Body)
		return &APIError{StatusCode: res.StatusCode, Reason: reason(raw, "failed to "+op)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

func listQuery(p state.ListParams) url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	if p.Order != "" {
		q.Set("order", p.Order)
	}
	return q
}
