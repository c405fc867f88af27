package maps

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	gmaps "googlemaps.github.io/maps"
)

const DefaultBaseURL = "https://maps.googleapis.com"

// ErrMissingAPIKey is returned by every call when no Google Maps key is
// configured.
var ErrMissingAPIKey = errors.New("google maps API key not configured")

// Client talks to the Google Maps web services the trip assistant needs.
// Geocoding results are cached by place id.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client

	geocodes *cache.Cache

	mu     sync.Mutex
	sdk    *gmaps.Client
	sdkKey sdkConfig
}

type sdkConfig struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a Maps client. Geocoded coordinates are kept for ttl.
func NewClient(apiKey string, httpClient *http.Client, ttl time.Duration) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		HTTPClient: httpClient,
		geocodes:   cache.New(ttl, 2*ttl),
	}
}

// service returns a googlemaps client for the current key, base URL and
// HTTP client, rebuilding it when any of them changed.
func (c *Client) service() (*gmaps.Client, error) {
	if c.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	want := sdkConfig{apiKey: c.APIKey, baseURL: strings.TrimRight(c.BaseURL, "/"), client: c.HTTPClient}
	if c.sdk != nil && c.sdkKey == want {
		return c.sdk, nil
	}

	// WithHTTPClient wraps the transport in place, so hand it a copy of the
	// shared client.
	hc := http.Client{}
	if c.HTTPClient != nil {
		hc = *c.HTTPClient
	}
	sdk, err := gmaps.NewClient(
		gmaps.WithAPIKey(want.apiKey),
		gmaps.WithHTTPClient(&hc),
		gmaps.WithBaseURL(want.baseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	c.sdk, c.sdkKey = sdk, want
	return sdk, nil
}

// get performs a GET against a Maps JSON endpoint and returns the raw body
// and status code. Passthrough endpoints use it because the SDK decodes
// responses into typed results and drops the upstream body.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, int, error) {
	if c.APIKey == "" {
		return nil, 0, ErrMissingAPIKey
	}

	params.Set("key", c.APIKey)
	endpoint := strings.TrimRight(c.BaseURL, "/") + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to call %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read %s response: %w", path, err)
	}
	return data, resp.StatusCode, nil
}
