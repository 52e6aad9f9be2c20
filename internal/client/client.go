// Package client talks to the remote restaurant API.
package client

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jwalitptl/restaurant-admin/pkg/circuitbreaker"
	"github.com/jwalitptl/restaurant-admin/pkg/metrics"
)

type Config struct {
	BaseURL         string
	Timeout         time.Duration
	RetryCount      int
	RetryWait       time.Duration
	RetryMaxWait    time.Duration
	BreakerFailures int
	BreakerTimeout  time.Duration
	Debug           bool
}

// Client is shared by every session; per-session calls go through API.
type Client struct {
	http    *resty.Client
	breaker *circuitbreaker.CircuitBreaker
	metrics *metrics.Metrics
}

func New(cfg Config, m *metrics.Metrics) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RetryWait <= 0 {
		cfg.RetryWait = 100 * time.Millisecond
	}
	if cfg.RetryMaxWait <= 0 {
		cfg.RetryMaxWait = 2 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(cfg.RetryMaxWait).
		SetDebug(cfg.Debug)
	httpClient.AddRetryCondition(retryCondition)

	return &Client{
		http: httpClient,
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "restaurant-api",
			MaxFailures: cfg.BreakerFailures,
			Timeout:     cfg.BreakerTimeout,
			IsFailure:   isServerFailure,
		}),
		metrics: m,
	}
}

// retryCondition retries reads only. Mutations are never replayed, so a
// status change cannot be submitted twice.
func retryCondition(r *resty.Response, err error) bool {
	if r == nil || r.Request == nil || r.Request.Method != http.MethodGet {
		return false
	}
	if err != nil {
		return true
	}
	code := r.StatusCode()
	return code >= 500 || code == http.StatusTooManyRequests
}

// isServerFailure reports whether err says the API is unhealthy, as
// opposed to rejecting one request.
func isServerFailure(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500
	}
	var netErr net.Error
	return errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded)
}

// WithToken returns an API bound to one bearer token.
func (c *Client) WithToken(token string) *API {
	return &API{client: c, token: token}
}

// API issues calls on behalf of one signed-in user.
type API struct {
	client *Client
	token  string
}

func (a *API) Token() string { return a.token }

func (a *API) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var resp *resty.Response
	start := time.Now()

	err := a.client.breaker.Execute(func() error {
		req := a.client.http.R().SetContext(ctx)
		if a.token != "" {
			req.SetAuthToken(a.token)
		}
		if body != nil {
			req.SetBody(body)
		}
		r, err := req.Execute(method, path)
		if err != nil {
			return err
		}
		resp = r
		if r.IsError() {
			return newAPIError(r.StatusCode(), r.Body())
		}
		return nil
	})

	status := "error"
	if resp != nil {
		status = strconv.Itoa(resp.StatusCode())
	}
	a.client.metrics.ObserveRemote(method, status, time.Since(start))

	if err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

func (a *API) get(ctx context.Context, path string) ([]byte, error) {
	return a.do(ctx, http.MethodGet, path, nil)
}

func (a *API) send(ctx context.Context, method, path string, body any) error {
	_, err := a.do(ctx, method, path, body)
	return err
}

// Ready reports ErrOpen while the breaker rejects calls to the API.
func (c *Client) Ready() error {
	if c.breaker.State() == circuitbreaker.StateOpen {
		return circuitbreaker.ErrOpen
	}
	return nil
}
