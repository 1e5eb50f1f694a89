package metricsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/oauth2"
)

const (
	// DefaultTimeout bounds a single request when Config.Timeout is zero
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is sent when Config.UserAgent is empty
	DefaultUserAgent = "goMetricsDashboard-metricsapi"

	// errorBodyDrainLimit caps how much of a failed response is read before closing
	errorBodyDrainLimit = 64 << 10
)

// Config configures a Client. BaseURL is required.
type Config struct {
	// BaseURL of the metrics API, e.g. http://localhost:8000
	BaseURL string
	// Token, when set, is sent as a bearer token on every request
	Token string
	// Timeout per HTTP attempt
	Timeout time.Duration
	// UserAgent header value
	UserAgent string
	// Retry policy at the fetch boundary. The zero value makes a single attempt.
	Retry RetryPolicy
	// HTTPClient overrides the underlying client; its Transport is wrapped when Token is set
	HTTPClient *http.Client
	// Logger receives one debug record per attempt
	Logger *slog.Logger
}

// Client is a typed client for the metrics API. It is safe for concurrent use;
// its configuration is fixed at construction.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
	retry      RetryPolicy
	logger     *slog.Logger
}

// New validates cfg and creates a Client
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("metricsapi: base URL is required")
	}
	u, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("metricsapi: invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("metricsapi: base URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("metricsapi: base URL must include a host")
	}
	u.RawQuery = ""
	u.Fragment = ""

	if cfg.Retry.MaxRetries < 0 {
		return nil, fmt.Errorf("metricsapi: max retries must be >= 0, got %d", cfg.Retry.MaxRetries)
	}

	hc := &http.Client{}
	if cfg.HTTPClient != nil {
		copied := *cfg.HTTPClient
		hc = &copied
	}
	if hc.Timeout == 0 {
		hc.Timeout = cfg.Timeout
		if hc.Timeout <= 0 {
			hc.Timeout = DefaultTimeout
		}
	}
	if cfg.Token != "" {
		hc.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"}),
			Base:   hc.Transport,
		}
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		baseURL:    u,
		httpClient: hc,
		userAgent:  ua,
		retry:      cfg.Retry,
		logger:     logger,
	}, nil
}

// BaseURL returns the configured base URL
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// SourceCode returns the source-code metrics endpoint group
func (c *Client) SourceCode() *SourceCodeAPI {
	return &SourceCodeAPI{c: c}
}

// Pipelines returns the pipeline metrics endpoint group
func (c *Client) Pipelines() *PipelineAPI {
	return &PipelineAPI{c: c}
}

// PullRequests returns the pull-request metrics endpoint group
func (c *Client) PullRequests() *PullRequestAPI {
	return &PullRequestAPI{c: c}
}

// Fetch performs a GET on path with params and decodes the JSON body into T
func Fetch[T any](ctx context.Context, c *Client, path string, params *Params) (T, error) {
	var out T
	if err := c.fetch(ctx, path, params, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// buildURL joins the base URL path with the endpoint path and attaches params
func (c *Client) buildURL(path string, params *Params) string {
	u := *c.baseURL
	basePath := strings.TrimRight(u.Path, "/")
	u.Path = basePath + "/" + strings.TrimLeft(path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	if params.Len() > 0 {
		u.RawQuery = params.Encode()
	}
	return u.String()
}

func (c *Client) fetch(ctx context.Context, path string, params *Params, out any) error {
	endpoint := c.buildURL(path, params)
	attempt := 0
	return c.retry.run(ctx, func() error {
		attempt++
		return c.do(ctx, path, endpoint, attempt, out)
	})
}

// do performs one attempt. Errors that must not be retried are marked permanent.
func (c *Client) do(ctx context.Context, path, endpoint string, attempt int, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("build request for %s: %w", path, err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("metrics api request failed",
			"path", path,
			"attempt", attempt,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err.Error(),
		)
		tErr := &TransportError{Method: http.MethodGet, Path: path, Err: err}
		if ctx.Err() != nil {
			return backoff.Permanent(tErr)
		}
		return tErr
	}
	defer resp.Body.Close()

	c.logger.Debug("metrics api request completed",
		"path", path,
		"attempt", attempt,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, errorBodyDrainLimit))
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Method:     http.MethodGet,
			Path:       path,
		}
		if !apiErr.Temporary() {
			return backoff.Permanent(apiErr)
		}
		return apiErr
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(out); err != nil {
		return backoff.Permanent(&DecodeError{Path: path, Err: err})
	}
	// the body must hold exactly one JSON value
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			err = errTrailingData
		}
		return backoff.Permanent(&DecodeError{Path: path, Err: err})
	}
	return nil
}

// statusText returns the reason phrase of resp without the numeric code
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
