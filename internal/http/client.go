// Package http provides the default transport of the SuperFaktura client.
//
// It is built on go-retryablehttp for its request rewinding and leveled
// logging, with retries switched off: every call is a single attempt and
// failures are returned to the caller unchanged.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fivetwenty-io/sfapi/internal/constants"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// Client sends requests through a retryablehttp client configured for a
// single attempt. It satisfies sfapi.Doer.
type Client struct {
	client *retryablehttp.Client
	logger zerolog.Logger
	debug  bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger routes transport logs to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug logs request and response lines at debug level.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithTimeout sets the overall timeout of one exchange.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.client.HTTPClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.client.HTTPClient = httpClient
		}
	}
}

// NewClient creates the default transport.
func NewClient(opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = noRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		client: retryClient,
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient.Logger = &leveledLogger{logger: client.logger}

	if client.debug {
		retryClient.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, _ int) {
			client.logger.Debug().
				Str("method", req.Method).
				Str("url", req.URL.Redacted()).
				Msg("sending request")
		}
		retryClient.ResponseLogHook = func(_ retryablehttp.Logger, resp *http.Response) {
			client.logger.Debug().
				Int("status", resp.StatusCode).
				Str("content_type", resp.Header.Get(constants.HeaderContentType)).
				Msg("received response")
		}
	}

	return client
}

// Do sends req once. The response body is left open for the caller.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	retryReq, err := retryablehttp.FromRequest(req)
	if err != nil {
		return nil, fmt.Errorf("preparing request: %w", err)
	}

	resp, err := c.client.Do(retryReq)
	if err != nil {
		if resp != nil && resp.Body != nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}

		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Redacted(), err)
	}

	return resp, nil
}

// StandardClient exposes the transport as a plain *http.Client.
func (c *Client) StandardClient() *http.Client {
	return c.client.StandardClient()
}

// noRetry never retries. A cancelled context is reported as the error.
func noRetry(ctx context.Context, _ *http.Response, _ error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, nil
}

// RequestFactory creates requests bound to a context. It satisfies
// sfapi.RequestFactory.
type RequestFactory struct{}

// NewRequest implements sfapi.RequestFactory.
func (RequestFactory) NewRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	return req, nil
}
