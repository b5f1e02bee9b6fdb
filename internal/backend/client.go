// Package backend is the REST client for the Vantage Dating backend.
//
// The client never holds a credential itself. Every request is passed to a
// CredentialSource right before it is sent, so the bearer token in effect is
// always the one the session holds at call time.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vantagedating/adminctl/internal/errors"
	"github.com/vantagedating/adminctl/internal/log"
	"github.com/vantagedating/adminctl/internal/metrics"
	"github.com/vantagedating/adminctl/internal/version"
)

// DefaultTimeout bounds every backend call unless overridden.
const DefaultTimeout = 30 * time.Second

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// CredentialSource attaches (or strips) the credential on an outgoing request.
type CredentialSource interface {
	Authorize(req *http.Request)
}

// CredentialFunc adapts a function to CredentialSource.
type CredentialFunc func(req *http.Request)

// Authorize calls f(req).
func (f CredentialFunc) Authorize(req *http.Request) { f(req) }

// ResponseValidator checks a response against the backend contract.
// body is the fully read response body.
type ResponseValidator interface {
	ValidateResponse(req *http.Request, resp *http.Response, body []byte) error
}

// Client is the backend API client
type Client struct {
	baseURL     *url.URL
	httpClient  *http.Client
	credentials CredentialSource
	validator   ResponseValidator
	logger      *log.Logger
	metrics     *metrics.Metrics
	userAgent   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the transport timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithCredentials sets the credential source consulted on every request.
func WithCredentials(src CredentialSource) Option {
	return func(c *Client) { c.credentials = src }
}

// WithValidator enables contract validation of every response.
func WithValidator(v ResponseValidator) Option {
	return func(c *Client) { c.validator = v }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics records request counts and latencies.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a new backend API client
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.NewConfigInvalidError(fmt.Sprintf("api_url %q: %v", baseURL, err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.NewConfigInvalidError(fmt.Sprintf("api_url %q must use http or https", baseURL))
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     log.Discard(),
		userAgent:  version.UserAgent(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// SetCredentials replaces the credential source.
func (c *Client) SetCredentials(src CredentialSource) {
	c.credentials = src
}

// newRequest builds a JSON request with the standard headers and the
// current credential attached.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInputInvalid, "failed to encode request body", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	target := c.baseURL.String() + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, errors.NewTransportError(method, path, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(RequestIDHeader, uuid.NewString())
	req.Header.Set("User-Agent", c.userAgent)

	if c.credentials != nil {
		c.credentials.Authorize(req)
	} else {
		req.Header.Del("Authorization")
	}

	return req, nil
}

// do sends a request and decodes a 2xx JSON body into out.
// route is the path template used as the metrics label.
func (c *Client) do(ctx context.Context, method, route, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	requestID := req.Header.Get(RequestIDHeader)
	logger := c.logger.With("method", method, "path", path, "request_id", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordAPIRequest(method, route, 0, time.Since(start))
		logger.Debug("backend request failed", "error", err.Error())
		return errors.NewTransportError(method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	c.metrics.RecordAPIRequest(method, route, resp.StatusCode, time.Since(start))
	if err != nil {
		return errors.NewTransportError(method, path, err)
	}
	logger.Debug("backend request completed", "status", resp.StatusCode, "duration", time.Since(start))

	if c.validator != nil {
		if err := c.validator.ValidateResponse(req, resp, data); err != nil {
			logger.Warn("backend response violates contract", "error", err.Error())
			return errors.Wrap(errors.ErrCodeAPIContract,
				fmt.Sprintf("response to %s %s does not match the backend contract", method, route), err).
				WithSuggestion("Disable strict_contract if the backend was upgraded intentionally")
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp, data, requestID)
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return errors.Wrap(errors.ErrCodeAPIDecode,
				fmt.Sprintf("failed to decode response to %s %s", method, route), err)
		}
	}

	return nil
}

func (c *Client) get(ctx context.Context, route, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, route, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, route, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, route, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, route, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, route, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, route, path string) error {
	return c.do(ctx, http.MethodDelete, route, path, nil, nil, nil)
}

// Ping sends an unauthenticated request to the identity route. Any HTTP
// answer, including 401, means the backend is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, RouteMe, nil, nil)
	if err != nil {
		return err
	}
	req.Header.Del("Authorization")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordAPIRequest(http.MethodGet, RouteMe, 0, time.Since(start))
		return errors.NewTransportError(http.MethodGet, RouteMe, err)
	}
	c.metrics.RecordAPIRequest(http.MethodGet, RouteMe, resp.StatusCode, time.Since(start))
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// resourcePath fills the {id} placeholder of a route with an escaped id.
func resourcePath(route, id string) string {
	return strings.Replace(route, "{id}", url.PathEscape(id), 1)
}
