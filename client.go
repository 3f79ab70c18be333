package quote0

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the default API host. Endpoints are under /api/authV2/open/*.
	// This matches the official curl examples.
	DefaultBaseURL = "https://dot.mindreset.tech"

	apiPrefix           = "/api/authV2/open"
	userAgentProduct    = "quote0-go-sdk"
	userAgentVersion    = "2.0"
	defaultHTTPTimeout  = 30 * time.Second
	maxResponseBodySize = 4 << 20 // 4 MiB guard
)

// Client exposes the Quote/0 authV2 APIs with proper authentication and rate limiting.
//
// A Client holds one reusable http.Client; release it with Close when the
// client is no longer needed:
//
//	c, err := quote0.NewClient(token)
//	if err != nil { ... }
//	defer c.Close()
type Client struct {
	baseURL      string
	apiKey       string
	http         *http.Client
	limiter      RateLimiter
	userAgent    string
	logger       *zap.Logger
	extraHeaders map[string]string

	mu            sync.RWMutex
	defaultDevice string
}

// ClientOption mutates the client during construction.
type ClientOption func(*Client)

// NewClient builds a client. apiKey is required (format: dot_app_xxx).
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrAPITokenMissing
	}
	c := &Client{
		baseURL:   DefaultBaseURL,
		apiKey:    apiKey,
		userAgent: buildDefaultUserAgent(),
		http:      &http.Client{Timeout: defaultHTTPTimeout},
		limiter:   NewFixedIntervalLimiter(100 * time.Millisecond), // 10 QPS
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	c.baseURL = sanitizeBaseURL(c.baseURL)
	return c, nil
}

// WithBaseURL overrides the API host (useful for staging/tests). No trailing slash required.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient installs a custom http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithRateLimiter replaces the default limiter. Pass nil to disable (not recommended).
func WithRateLimiter(l RateLimiter) ClientOption {
	return func(c *Client) { c.limiter = l }
}

// WithUserAgent sets a custom User-Agent string.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger installs a zap logger for request-level debug logging.
// The default is a no-op logger.
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// WithExtraHeaders adds headers to every request. Standard headers
// (Authorization, Content-Type, User-Agent) never overwrite a caller-supplied
// header of the same name.
func WithExtraHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		if len(headers) == 0 {
			return
		}
		if c.extraHeaders == nil {
			c.extraHeaders = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			c.extraHeaders[k] = v
		}
	}
}

// WithDefaultDeviceID sets a default device serial number used when a call omits deviceID.
func WithDefaultDeviceID(deviceID string) ClientOption {
	return func(c *Client) {
		c.mu.Lock()
		c.defaultDevice = strings.TrimSpace(deviceID)
		c.mu.Unlock()
	}
}

// SetDefaultDeviceID updates the default device ID in a thread-safe manner.
func (c *Client) SetDefaultDeviceID(deviceID string) {
	c.mu.Lock()
	c.defaultDevice = strings.TrimSpace(deviceID)
	c.mu.Unlock()
}

// GetDefaultDeviceID returns the current default device ID.
func (c *Client) GetDefaultDeviceID() string {
	c.mu.RLock()
	id := c.defaultDevice
	c.mu.RUnlock()
	return id
}

// Close releases the client's idle connections. The client must not be used
// after Close; create a new one per credential/configuration scope.
func (c *Client) Close() {
	if c.http != nil {
		c.http.CloseIdleConnections()
	}
}

func sanitizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(baseURL, "/")
}

func (c *Client) resolveDeviceID(explicit string) (string, error) {
	explicit = strings.TrimSpace(explicit)
	if explicit != "" {
		return explicit, nil
	}
	c.mu.RLock()
	id := c.defaultDevice
	c.mu.RUnlock()
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrDeviceIDMissing
	}
	return id, nil
}

// do runs the full request lifecycle: build, dispatch, classify. It returns
// the raw body of a 200 response; any other status becomes a typed APIError.
// payload may be nil for bodyless requests.
func (c *Client) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	var reqBody io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("quote0: encode request: %w", err)
		}
		reqBody = bytes.NewReader(body)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("quote0: build request: %w", err)
	}
	for k, v := range c.extraHeaders {
		req.Header.Set(k, v)
	}
	setHeaderIfAbsent(req.Header, "Authorization", "Bearer "+c.apiKey)
	setHeaderIfAbsent(req.Header, "Content-Type", "application/json")
	if ua := strings.TrimSpace(c.userAgent); ua != "" {
		setHeaderIfAbsent(req.Header, "User-Agent", ua)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote0: execute request: %w", err)
	}
	defer resp.Body.Close()

	limited := io.LimitReader(resp.Body, maxResponseBodySize)
	raw, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("quote0: read response: %w", err)
	}

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return nil, buildAPIError(resp.StatusCode, raw)
	}
	return raw, nil
}

// setHeaderIfAbsent keeps caller-supplied header values authoritative.
func setHeaderIfAbsent(h http.Header, key, value string) {
	if h.Get(key) == "" {
		h.Set(key, value)
	}
}

// decodeJSON parses a 200 body into the target model, surfacing failures as a
// *DecodeError distinct from the status taxonomy.
func decodeJSON[T any](raw []byte, target string) (T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &DecodeError{Target: target, Err: err}
	}
	return out, nil
}

func buildDefaultUserAgent() string {
	goVer := strings.TrimPrefix(runtime.Version(), "go")
	if goVer == "" {
		goVer = runtime.Version()
	}
	return fmt.Sprintf("%s/%s (+https://github.com/1set/quote0; Go%s; %s/%s)",
		userAgentProduct, userAgentVersion, goVer, runtime.GOOS, runtime.GOARCH)
}
