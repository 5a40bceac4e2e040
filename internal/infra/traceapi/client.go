// Package traceapi is a client for the Daisen trace server API.
package traceapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/runoshun/daisen/internal/domain"
)

// Ensure Client implements domain.TraceSource.
var _ domain.TraceSource = (*Client)(nil)

const (
	tracePath     = "/api/trace"
	compNamesPath = "/api/compnames"

	defaultTimeout = 10 * time.Second
	maxErrorBody   = 512
)

// APIError is returned for non-2xx responses.
type APIError struct {
	Path       string
	Body       string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("trace api %s: status %d", e.Path, e.StatusCode)
	}
	return fmt.Sprintf("trace api %s: status %d: %s", e.Path, e.StatusCode, e.Body)
}

// Client fetches tasks over HTTP. Every request waits on a rate limiter.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit limits the client to rps requests per second.
// A non-positive rps disables the limit.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a Client for the server at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(domain.DefaultRequestsPerSecond), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromConfig creates a Client from the [trace] settings.
func NewClientFromConfig(cfg domain.TraceConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, domain.ErrEmptyTraceURL
	}
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return NewClient(cfg.URL,
		WithHTTPClient(&http.Client{Timeout: timeout}),
		WithRateLimit(cfg.RequestsPerSecond),
	), nil
}

// Tasks fetches the tasks matching q.
func (c *Client) Tasks(ctx context.Context, q domain.TraceQuery) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := c.get(ctx, tracePath, queryValues(q), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ComponentNames fetches the component names known to the server.
func (c *Client) ComponentNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.get(ctx, compNamesPath, nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// queryValues encodes q with the parameter names of the trace API.
func queryValues(q domain.TraceQuery) url.Values {
	v := url.Values{}
	if q.Where != "" {
		v.Set("where", q.Where)
	}
	if q.ID != "" {
		v.Set("id", q.ID)
	}
	if q.ParentID != "" {
		v.Set("parentid", q.ParentID)
	}
	if q.StartTime != nil {
		v.Set("starttime", strconv.FormatFloat(*q.StartTime, 'g', -1, 64))
	}
	if q.EndTime != nil {
		v.Set("endtime", strconv.FormatFloat(*q.EndTime, 'g', -1, 64))
	}
	return v
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.baseURL == "" {
		return domain.ErrEmptyTraceURL
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
