// Package gateway talks to the attendance REST backend.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/apierr"
)

const HeaderRequestID = "X-Request-ID"

// TokenSource supplies the bearer token for each request. An empty token
// sends the request unauthenticated.
type TokenSource interface {
	Token() string
}

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int // retries for GET requests only
	Tokens     TokenSource
	Logger     *slog.Logger
}

type Client struct {
	read   *resty.Client
	write  *resty.Client
	tokens TokenSource
	logger *slog.Logger
}

func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		tokens: opts.Tokens,
		logger: logger.With(slog.String("component", "gateway")),
	}
	c.write = c.newResty(opts)
	c.read = c.newResty(opts)
	if opts.RetryCount > 0 {
		c.read.
			SetRetryCount(opts.RetryCount).
			SetRetryWaitTime(500 * time.Millisecond).
			SetRetryMaxWaitTime(5 * time.Second).
			AddRetryCondition(func(resp *resty.Response, err error) bool {
				if answered(resp) {
					return resp.StatusCode() >= http.StatusInternalServerError
				}
				return err != nil && !errors.Is(err, context.Canceled)
			})
	}
	return c
}

func (c *Client) newResty(opts Options) *resty.Client {
	return resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		OnBeforeRequest(c.authorize)
}

func (c *Client) authorize(_ *resty.Client, req *resty.Request) error {
	if c.tokens == nil {
		return nil
	}
	if token := c.tokens.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return nil
}

// Do sends one request. query and body may be nil; out, when non-nil,
// receives the decoded JSON response. Every failure is an *apierr.Error.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	client := c.write
	if method == http.MethodGet {
		client = c.read
	}

	requestID := uuid.NewString()
	req := client.R().
		SetContext(ctx).
		SetHeader(HeaderRequestID, requestID)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}

	log := c.logger.With(
		slog.String("request_id", requestID),
		slog.String("method", method),
		slog.String("path", path),
	)

	resp, err := req.Execute(method, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return apierr.From(ctxErr)
		}
		if answered(resp) {
			log.Warn("Response unreadable", "status", resp.StatusCode(), "error", err)
			return apierr.Malformed(resp.StatusCode(), err)
		}
		log.Warn("Request failed", "error", err)
		return apierr.Connectivity(err)
	}

	if resp.IsError() {
		apiErr := apierr.FromStatus(resp.StatusCode(), resp.Body())
		log.Warn("Request rejected",
			"status", resp.StatusCode(),
			"kind", apiErr.Kind.String(),
			"duration", resp.Time(),
		)
		return apiErr
	}

	log.Debug("Request completed", "status", resp.StatusCode(), "duration", resp.Time())
	return nil
}

// answered reports whether the server produced a status line.
func answered(resp *resty.Response) bool {
	return resp != nil && resp.StatusCode() > 0
}
