package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kbukum/gli/resilience"
)

// Client is an HTTP client with default headers, timeout and retry.
type Client struct {
	httpClient *http.Client
	config     Config
}

// New creates a new HTTP client with the given configuration.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, err
	}
	if tlsCfg != nil {
		transport.TLSClientConfig = tlsCfg
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
	}, nil
}

// Do executes a request and reads the complete response body.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	return withRetry(ctx, c.config.Retry, func() (*Response, error) {
		stream, err := c.open(ctx, req)
		if err != nil {
			return nil, err
		}
		defer func() { _ = stream.Close() }()

		body, err := io.ReadAll(stream.Body)
		if err != nil {
			return nil, NewConnectionError(fmt.Errorf("read response body: %w", err))
		}
		return &Response{StatusCode: stream.StatusCode, Headers: stream.Headers, Body: body}, nil
	})
}

// Open issues a GET for url and returns the response with its body unread.
// Retry covers establishing the response; once a 2xx status is received the
// body belongs to the caller.
func (c *Client) Open(ctx context.Context, url string) (*StreamResponse, error) {
	return withRetry(ctx, c.config.Retry, func() (*StreamResponse, error) {
		return c.open(ctx, Request{Method: http.MethodGet, Path: url})
	})
}

// Unwrap returns the underlying *http.Client.
func (c *Client) Unwrap() *http.Client {
	return c.httpClient
}

func withRetry[T any](ctx context.Context, cfg *resilience.RetryConfig, fn func() (T, error)) (T, error) {
	if cfg == nil {
		return fn()
	}
	return resilience.Retry(ctx, *cfg, fn)
}

// open sends a single request and classifies the status code.
func (c *Client) open(ctx context.Context, req Request) (*StreamResponse, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil || isTimeout(err) {
			return nil, NewTimeoutError(err)
		}
		return nil, NewConnectionError(err)
	}

	if classErr := ClassifyStatusCode(resp.StatusCode, nil); classErr != nil {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		classErr.Body = body
		return nil, classErr
	}

	return &StreamResponse{
		StatusCode:    resp.StatusCode,
		Headers:       flattenHeaders(resp.Header),
		ContentLength: resp.ContentLength,
		Body:          resp.Body,
	}, nil
}

// buildRequest constructs an *http.Request from the client config and request.
func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	url := req.Path
	if c.config.BaseURL != "" && !strings.HasPrefix(req.Path, "http://") && !strings.HasPrefix(req.Path, "https://") {
		url = strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("create request: %v", err))
	}

	httpReq.Header.Set("User-Agent", c.config.UserAgent)
	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	return httpReq, nil
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}

func isTimeout(err error) bool {
	type timeout interface{ Timeout() bool }
	t, ok := err.(timeout)
	return ok && t.Timeout()
}
