package youtube

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/marcNY/youtube-idea-generator/retry"
)

// Client talks to the YouTube Data API v3. It is constructed explicitly and
// injected into consumers; there is no package-level instance.
type Client struct {
	svc     *youtube.Service
	limiter *rate.Limiter
	retry   retry.Config
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
	retry      retry.Config
}

// WithEndpoint overrides the API base URL. Tests point this at an
// httptest.Server.
func WithEndpoint(url string) Option {
	return func(o *clientOptions) { o.endpoint = url }
}

// WithHTTPClient supplies a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = c }
}

// WithRateLimit caps outgoing API calls at rps requests per second.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *clientOptions) { o.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithRetry overrides the retry policy for upstream calls.
func WithRetry(cfg retry.Config) Option {
	return func(o *clientOptions) { o.retry = cfg }
}

// NewClient creates a catalog client authenticated with an API key.
func NewClient(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube: api key required")
	}

	o := clientOptions{
		limiter: rate.NewLimiter(rate.Limit(10), 10),
		retry:   retry.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	svcOpts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if o.endpoint != "" {
		svcOpts = append(svcOpts, option.WithEndpoint(o.endpoint))
	}
	if o.httpClient != nil {
		svcOpts = append(svcOpts, option.WithHTTPClient(o.httpClient))
	}

	svc, err := youtube.NewService(ctx, svcOpts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &Client{svc: svc, limiter: o.limiter, retry: o.retry}, nil
}

// do runs one upstream call through the rate limiter and retry policy.
func (c *Client) do(ctx context.Context, op, id string, fn func(context.Context) error) error {
	call := func(ctx context.Context) error {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
		}
		return fn(ctx)
	}

	if err := retry.Do(ctx, c.retry, retryable, call); err != nil {
		return &CallError{Op: op, ID: id, Err: err}
	}
	return nil
}
