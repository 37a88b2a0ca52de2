// Package fetch retrieves registrar pages over HTTP with retry, backoff and
// a politeness delay. Parsing never lives here: callers get the page body as
// text or an *Error.
package fetch

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"
)

const defaultUserAgent = "lectern/1.0 (+https://github.com/lectern-project/lectern)"

// Error wraps a failed fetch with the URL and, when a response was received,
// its status code.
type Error struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithBaseDelay sets the delay before the first retry. Each further retry
// doubles it.
func WithBaseDelay(d time.Duration) Option {
	return func(c *Client) { c.baseDelay = d }
}

// WithMaxRetries sets how many times a failed request is retried.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// Client fetches pages with exponential backoff. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseDelay  time.Duration
	maxRetries int
	userAgent  string
}

// NewClient builds a Client with a 30s timeout, 2s base delay and 3 retries.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseDelay:  2 * time.Second,
		maxRetries: 3,
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves one URL and returns the body as text. Server errors and
// transport failures are retried with exponential backoff and jitter; client
// errors (4xx) are not, since repeating a bad request cannot fix it.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := c.wait(ctx, attempt); err != nil {
				return "", &Error{URL: url, Err: err}
			}
		}
		body, retryable, err := c.fetchOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return "", lastErr
}

func (c *Client) fetchOnce(ctx context.Context, url string) (body string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, &Error{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", ctx.Err() == nil, &Error{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		ferr := &Error{URL: url, StatusCode: resp.StatusCode}
		return "", resp.StatusCode >= 500, ferr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, &Error{URL: url, Err: err}
	}
	return string(data), false, nil
}

// wait sleeps for the backoff delay of the given attempt, doubled per
// attempt with up to 10% jitter so parallel fetchers do not retry in step.
func (c *Client) wait(ctx context.Context, attempt int) error {
	delay := c.baseDelay << (attempt - 1)
	delay += time.Duration(rand.Int63n(int64(delay)/10 + 1))
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
