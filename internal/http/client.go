// Package http provides the retrying HTTP client used by remote model
// providers to fetch model documents.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"sync/atomic"
	"time"
)

// Client wraps an *http.Client with retries and default headers.
type Client struct {
	client     *http.Client
	config     Config
	retryCount int64
}

// Config configures the client
type Config struct {
	Timeout           time.Duration
	MaxRetries        int // 0 selects the default of 3; negative disables retries
	BaseRetryDelay    time.Duration
	MaxRetryDelay     time.Duration
	BackoffMultiplier float64
	RetryableStatus   []int
	Headers           map[string]string
	UserAgent         string
	Transport         http.RoundTripper
}

// Response is a fully read response.
type Response struct {
	StatusCode  int
	ContentType string
	Header      http.Header
	Body        []byte
}

// NewClient creates a new client, filling unset fields with defaults
func NewClient(config Config) *Client {
	backoff := DefaultBackoffConfig()
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	switch {
	case config.MaxRetries == 0:
		config.MaxRetries = 3
	case config.MaxRetries < 0:
		config.MaxRetries = 0
	}
	if config.BaseRetryDelay == 0 {
		config.BaseRetryDelay = backoff.BaseDelay
	}
	if config.MaxRetryDelay == 0 {
		config.MaxRetryDelay = backoff.MaxDelay
	}
	if config.BackoffMultiplier == 0 {
		config.BackoffMultiplier = backoff.Multiplier
	}
	if len(config.RetryableStatus) == 0 {
		config.RetryableStatus = []int{
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		}
	}

	headers := make(map[string]string, len(config.Headers)+1)
	for k, v := range config.Headers {
		headers[k] = v
	}
	if config.UserAgent != "" {
		headers["User-Agent"] = config.UserAgent
	} else if _, ok := headers["User-Agent"]; !ok {
		headers["User-Agent"] = "razorpad-kit/1.0"
	}
	config.Headers = headers

	return &Client{
		client: &http.Client{
			Timeout:   config.Timeout,
			Transport: config.Transport,
		},
		config: config,
	}
}

// Do executes an HTTP request, retrying transport errors and retryable
// status codes with exponential backoff. The last response is returned when
// retries run out.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	for key, value := range c.config.Headers {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}

	var (
		resp *http.Response
		err  error
	)
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.delay(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			atomic.AddInt64(&c.retryCount, 1)
		}

		resp, err = c.client.Do(c.cloneRequest(ctx, req))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if attempt < c.config.MaxRetries {
				continue
			}
			return nil, err
		}

		if attempt < c.config.MaxRetries && slices.Contains(c.config.RetryableStatus, resp.StatusCode) {
			_ = resp.Body.Close() //nolint:errcheck // Best effort close
			continue
		}
		break
	}
	return resp, err
}

// Get fetches url and reads the whole body.
func (c *Client) Get(ctx context.Context, url string, header http.Header) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Header:      resp.Header,
		Body:        body,
	}, nil
}

// RetryCount returns the number of retries performed so far.
func (c *Client) RetryCount() int64 {
	return atomic.LoadInt64(&c.retryCount)
}

// cloneRequest copies the request for an attempt, rewinding the body when
// the request supports it.
func (c *Client) cloneRequest(ctx context.Context, orig *http.Request) *http.Request {
	cloned := orig.Clone(ctx)
	if orig.GetBody != nil {
		if body, err := orig.GetBody(); err == nil {
			cloned.Body = body
		}
	}
	return cloned
}

func (c *Client) delay(attempt int) time.Duration {
	return CalculateBackoff(BackoffConfig{
		BaseDelay:  c.config.BaseRetryDelay,
		MaxDelay:   c.config.MaxRetryDelay,
		Multiplier: c.config.BackoffMultiplier,
	}, attempt)
}
