// Package garmin is a session-authenticated client for the Garmin Connect
// web API. A Client is bound to one region (domestic or China) for its whole
// lifetime; all calls fail with an AuthenticationError until Login succeeds.
package garmin

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	go_json "github.com/goccy/go-json"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	ssoURL = "https://sso.garmin.com/sso"
	apiURL = "https://connectapi.garmin.com"

	ssoURLChina = "https://sso.garmin.cn/sso"
	apiURLChina = "https://connectapi.garmin.cn"
)

// Garmin throttles per-session fairly aggressively; one request every
// couple hundred milliseconds keeps a full refresh cycle under the limit.
const (
	defaultRatePerSec = 5
	defaultBurst      = 5
)

type Client struct {
	User        UserService
	Activity    ActivityService
	Wellness    WellnessService
	Gear        GearService
	Measurement MeasurementService

	ssoURL     string
	apiURL     string
	httpClient *http.Client
	logger     *slog.Logger

	username string
	password string

	tokenMu sync.Mutex
	token   *oauth2.Token
}

func New(username, password string, opts ...Option) *Client {
	cfg := &clientConfig{
		ssoURL:  ssoURL,
		apiURL:  apiURL,
		logger:  slog.Default(),
		limiter: rate.NewLimiter(rate.Limit(defaultRatePerSec), defaultBurst),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	c := &Client{
		ssoURL:   cfg.ssoURL,
		apiURL:   cfg.apiURL,
		logger:   cfg.logger,
		username: username,
		password: password,
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.timeout}
	}
	httpClient.Transport = &garminTransport{
		base:    baseTransport(httpClient.Transport),
		client:  c,
		limiter: cfg.limiter,
	}
	c.httpClient = httpClient

	c.User = &userService{client: c}
	c.Activity = &activityService{client: c}
	c.Wellness = &wellnessService{client: c}
	c.Gear = &gearService{client: c}
	c.Measurement = &measurementService{client: c}

	return c
}

type clientConfig struct {
	ssoURL     string
	apiURL     string
	httpClient *http.Client
	logger     *slog.Logger
	limiter    *rate.Limiter
	timeout    time.Duration
}

type Option func(*clientConfig)

// WithChinaRegion routes every call through the garmin.cn endpoints. This is
// fixed for the lifetime of the client.
func WithChinaRegion() Option {
	return func(cfg *clientConfig) {
		cfg.ssoURL = ssoURLChina
		cfg.apiURL = apiURLChina
	}
}

// WithBaseURLs overrides both endpoints, mainly for tests.
func WithBaseURLs(sso, api string) Option {
	return func(cfg *clientConfig) {
		cfg.ssoURL = sso
		cfg.apiURL = api
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) { cfg.logger = logger }
}

func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) { cfg.timeout = d }
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(cfg *clientConfig) { cfg.httpClient = httpClient }
}

func WithRateLimit(perSec float64, burst int) Option {
	return func(cfg *clientConfig) { cfg.limiter = rate.NewLimiter(rate.Limit(perSec), burst) }
}

func (c *Client) setToken(token *oauth2.Token) {
	c.tokenMu.Lock()
	c.token = token
	c.tokenMu.Unlock()
}

func (c *Client) currentToken() *oauth2.Token {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result any) error {
	u := c.apiURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		if err := go_json.NewEncoder(buf).Encode(body); err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ConnectionError{Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return parseAPIError(resp)
	}

	if result != nil && resp.StatusCode != http.StatusNoContent {
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return &ConnectionError{Cause: err}
		}
		if err := go_json.NewDecoder(bytes.NewReader(raw)).Decode(result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

type garminTransport struct {
	base    http.RoundTripper
	client  *Client
	limiter *rate.Limiter
}

var _ http.RoundTripper = (*garminTransport)(nil)

func (t *garminTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	if token := t.client.currentToken(); token != nil {
		req.Header.Set("Authorization", token.Type()+" "+token.AccessToken)
	}
	req.Header.Set("Accept", "application/json")

	return t.base.RoundTrip(req)
}

func baseTransport(rt http.RoundTripper) http.RoundTripper {
	if rt != nil {
		return rt
	}
	return http.DefaultTransport
}
