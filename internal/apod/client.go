package apod

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher is what the gallery needs from the feed.
// *Client implements it; tests substitute their own.
type Fetcher interface {
	FetchRange(ctx context.Context, r DateRange) ([]Entry, error)
	FetchRandom(ctx context.Context) (Entry, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the APOD HTTP API, or to a proxy with the same shape.
type Client struct {
	endpoint  *url.URL
	apiKey    string
	http      *http.Client
	userAgent string
	timeout   time.Duration
	now       func() time.Time
	intN      func(n int64) int64
}

const (
	DefaultEndpoint  = "https://api.nasa.gov/planetary/apod"
	defaultUserAgent = "stargaze/0.1"
	defaultTimeout   = 10 * time.Second
)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout. A client passed with
// WithHTTPClient is copied rather than modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithRand overrides the random source used by FetchRandom.
func WithRand(intN func(n int64) int64) Option {
	return func(c *Client) {
		if intN != nil {
			c.intN = intN
		}
	}
}

// NewClient builds a Client for endpoint. An empty apiKey leaves the
// api_key parameter off every request, which is what a credential proxy
// expects.
func NewClient(endpoint, apiKey string, opts ...Option) (*Client, error) {
	u, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	c := &Client{
		endpoint:  u,
		apiKey:    strings.TrimSpace(apiKey),
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
		now:       time.Now,
		intN:      rand.Int64N,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 && c.http.Timeout != c.timeout {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c, nil
}

// Endpoint returns the resolved feed URL without query parameters.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// FetchRange retrieves every entry between r.Start and r.End inclusive,
// exactly as the feed returns them.
func (c *Client) FetchRange(ctx context.Context, r DateRange) ([]Entry, error) {
	const op = "fetch range"
	if c == nil {
		return nil, validationError(op, fmt.Errorf("client is nil"))
	}
	if r.Start.IsZero() || r.End.IsZero() {
		return nil, validationError(op, ErrMissingDates)
	}
	values := url.Values{}
	values.Set("start_date", FormatDate(r.Start))
	values.Set("end_date", FormatDate(r.End))

	var entries []Entry
	if err := c.get(ctx, op, values, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// FetchDate retrieves the single entry published on day.
func (c *Client) FetchDate(ctx context.Context, day time.Time) (Entry, error) {
	const op = "fetch date"
	if c == nil {
		return Entry{}, validationError(op, fmt.Errorf("client is nil"))
	}
	if day.IsZero() {
		return Entry{}, validationError(op, fmt.Errorf("date required"))
	}
	values := url.Values{}
	values.Set("date", FormatDate(day))

	var entry Entry
	if err := c.get(ctx, op, values, &entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// FetchRandom retrieves the entry for a uniformly random archive day.
func (c *Client) FetchRandom(ctx context.Context) (Entry, error) {
	if c == nil {
		return Entry{}, validationError("fetch random", fmt.Errorf("client is nil"))
	}
	return c.FetchDate(ctx, RandomDate(c.now(), c.intN))
}

func (c *Client) get(ctx context.Context, op string, values url.Values, dest any) error {
	if c.apiKey != "" {
		values.Set("api_key", c.apiKey)
	}
	reqURL := *c.endpoint
	reqURL.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Kind: KindNetwork, Op: op, Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &Error{Kind: KindParse, Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = DefaultEndpoint
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse api_url %q: unsupported scheme %q", endpoint, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", endpoint)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
