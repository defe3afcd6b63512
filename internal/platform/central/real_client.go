package central

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

	"github.com/go-logr/logr"

	"github.com/secure-ssid/central-portal/internal/config"
)

const (
	defaultUserAgent = "central-portal"
	// maxResponseBytes bounds how much of a response body is read.
	maxResponseBytes = 4 << 20
)

// RealClient implements ResourceClient against the console REST API.
type RealClient struct {
	baseURL    string
	token      string
	userAgent  string
	timeouts   *config.Timeouts
	httpClient *http.Client
	logger     logr.Logger
}

var _ ResourceClient = (*RealClient)(nil)

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *RealClient) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger API calls are reported to at V(1).
func WithLogger(l logr.Logger) ClientOption {
	return func(c *RealClient) {
		c.logger = l
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *RealClient) {
		c.userAgent = ua
	}
}

// NewRealClient creates a new RealClient with optional configuration.
func NewRealClient(baseURL, token string, opts ...ClientOption) *RealClient {
	c := &RealClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		userAgent:  defaultUserAgent,
		timeouts:   config.LoadTimeouts(),
		httpClient: http.DefaultClient,
		logger:     logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromSettings creates a RealClient from validated API settings.
func NewFromSettings(s *config.Settings, opts ...ClientOption) (*RealClient, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	opts = append([]ClientOption{WithTimeouts(s.Timeouts)}, opts...)
	return NewRealClient(s.BaseURL, s.Token, opts...), nil
}

// request describes a single API call.
type request struct {
	operation string
	method    string
	path      string
	query     url.Values
	body      any
}

// do executes one API call and decodes a non-empty response into out.
// Every call is recorded in the API metrics, whatever its outcome.
func (c *RealClient) do(ctx context.Context, r request, out any) (err error) {
	start := time.Now()
	defer func() {
		observeAPICall(r.operation, err, time.Since(start))
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Request)
	defer cancel()

	var body io.Reader
	if r.body != nil {
		buf, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", r.operation, err)
		}
		body = bytes.NewReader(buf)
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", r.operation, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", r.operation, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", r.operation, err)
	}

	c.logger.V(1).Info("API call",
		"operation", r.operation,
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"duration", time.Since(start).Round(time.Millisecond).String(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, data)
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", r.operation, err)
		}
	}
	return nil
}
