// Package dukascopy downloads hourly tick files from the Dukascopy datafeed.
package dukascopy

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public datafeed root.
const DefaultBaseURL = "https://datafeed.dukascopy.com/datafeed/"

// Options configures a Client.
type Options struct {
	BaseURL           string
	Workers           int
	Retries           int
	RetryWait         time.Duration
	Timeout           time.Duration
	RequestsPerSecond float64      // 0 disables rate limiting
	Logger            *slog.Logger // nil uses slog.Default
}

// Client fetches raw .bi5 files over HTTP. It is safe for concurrent use.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	logger  *slog.Logger
	retries int
}

// NewClient builds a Client with retries on transport errors, 429 and 5xx responses.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	// resty joins base and path with a slash
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.RetryWait <= 0 {
		opts.RetryWait = time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Minute
	}
	rc := resty.New().
		SetTransport(baseTransportConfig(opts.Workers)).
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(10 * opts.RetryWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return retryable(r.StatusCode())
		})

	c := &Client{http: rc, logger: opts.Logger, retries: opts.Retries}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	return c
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// Fetch downloads one hour file. A 4xx status means the hour is unavailable; a 429 or 5xx
// still returned once retries are used up is an error.
// Zero-length bodies are returned as present: the datafeed uses them for hours without ticks.
func (c *Client) Fetch(ctx context.Context, asset string, hour time.Time) ([]byte, bool, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, false, err
		}
	}
	path := HourPath(asset, hour)
	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", path, err)
	}
	if retryable(resp.StatusCode()) {
		return nil, false, fmt.Errorf("get %s: status %d after %d retries", path, resp.StatusCode(), c.retries)
	}
	if resp.IsError() {
		c.logger.Debug("hour unavailable", "asset", asset, "hour", hour.UTC().Format("2006-01-02T15"), "status", resp.StatusCode())
		return nil, false, nil
	}
	return resp.Body(), true, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.GetClient().CloseIdleConnections()
	return nil
}
