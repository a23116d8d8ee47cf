// Package remote fetches shared options documents and remote file contents
// over HTTP.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/react-three/create/internal/project"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxRetries  = 3
	defaultBackoffBase = 200 * time.Millisecond
	defaultBackoffMax  = 5 * time.Second
)

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// Client downloads documents. Transient failures (network errors, 429 and
// 5xx responses) are retried with exponential backoff.
type Client struct {
	http        *resty.Client
	logger      zerolog.Logger
	maxRetries  uint64
	backoffBase time.Duration
	backoffMax  time.Duration
	noRedirects bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient makes the client send requests through hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = resty.NewWithClient(hc)
	}
}

// WithRetries sets the number of retries and the initial backoff.
func WithRetries(maxRetries uint64, backoffBase time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.backoffBase = backoffBase
	}
}

// WithoutRedirects makes redirect responses fail instead of being followed.
func WithoutRedirects() Option {
	return func(c *Client) {
		c.noRedirects = true
	}
}

// New creates a Client.
func New(logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		http:        resty.New(),
		logger:      logger,
		maxRetries:  defaultMaxRetries,
		backoffBase: defaultBackoffBase,
		backoffMax:  defaultBackoffMax,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.SetTimeout(defaultTimeout).SetHeader("User-Agent", "create-react-three")
	if c.noRedirects {
		c.http.SetRedirectPolicy(resty.NoRedirectPolicy())
	}
	return c
}

// LoadOptions downloads a serialized options document. The document is
// decoded but not validated.
func (c *Client) LoadOptions(ctx context.Context, url string) (*project.Options, error) {
	data, err := c.get(ctx, url, "application/json")
	if err != nil {
		return nil, fmt.Errorf("failed to load options: %w", err)
	}
	return project.ParseOptions(data)
}

// Fetch downloads the content of a remote file.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	data, err := c.get(ctx, url, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, url, accept string) ([]byte, error) {
	backoff := retry.WithMaxRetries(c.maxRetries,
		retry.WithCappedDuration(c.backoffMax, retry.NewExponential(c.backoffBase)))

	var body []byte
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		req := c.http.R().SetContext(ctx)
		if accept != "" {
			req.SetHeader("Accept", accept)
		}
		resp, err := req.Get(url)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Debug().Err(err).Str("url", url).Int("attempt", attempt).Msg("request failed")
			return retry.RetryableError(err)
		}
		if resp.IsError() {
			statusErr := &StatusError{URL: url, StatusCode: resp.StatusCode()}
			if retryableStatus(resp.StatusCode()) {
				c.logger.Debug().Int("status", resp.StatusCode()).Str("url", url).Int("attempt", attempt).Msg("retrying request")
				return retry.RetryableError(statusErr)
			}
			return statusErr
		}
		body = resp.Body()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// IsNotFound reports whether err was caused by a 404 response.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}
