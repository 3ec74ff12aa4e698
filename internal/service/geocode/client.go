package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/poolmate/carpool/pkg/cache"
)

const (
	defaultBaseURL  = "https://geocoding-api.open-meteo.com"
	defaultTimeout  = 5 * time.Second
	defaultCacheTTL = 24 * time.Hour
)

var (
	ErrEmptyQuery = errors.New("geocode: empty query")
	ErrNoResult   = errors.New("geocode: no results")
)

// Result is the best match for a free-text place name
type Result struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Timezone string  `json:"timezone"`
	Country  string  `json:"country"`
}

// ClientConfig holds provider settings
type ClientConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Client resolves place names against the Open-Meteo geocoding API.
// Place names change rarely, so results are cached for a long TTL
// (24 hours by default). A nil cache disables caching.
type Client struct {
	baseURL  string
	http     *http.Client
	cache    cache.Store
	cacheTTL time.Duration
}

// NewClient creates a geocoding client, filling unset config with defaults
func NewClient(cfg ClientConfig, store cache.Store) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		http:     &http.Client{Timeout: cfg.Timeout},
		cache:    store,
		cacheTTL: cfg.CacheTTL,
	}
}

// Lookup resolves a free-text place name to its best match. ErrNoResult
// means the provider answered but knows no such place.
func (c *Client) Lookup(ctx context.Context, name string) (*Result, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyQuery
	}

	key := "geocode:" + strings.ToLower(name)
	if c.cache != nil {
		if cached, ok := c.cache.Get(ctx, key); ok {
			var res Result
			if err := json.Unmarshal([]byte(cached), &res); err == nil {
				return &res, nil
			}
		}
	}

	q := url.Values{}
	q.Set("name", name)
	q.Set("count", "1")
	q.Set("language", "en")
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode provider returned status %d", resp.StatusCode)
	}

	var payload struct {
		Results []struct {
			Name      string  `json:"name"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Timezone  string  `json:"timezone"`
			Country   string  `json:"country"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(payload.Results) == 0 {
		return nil, ErrNoResult
	}

	best := payload.Results[0]
	result := &Result{
		Name:     best.Name,
		Lat:      best.Latitude,
		Lon:      best.Longitude,
		Timezone: best.Timezone,
		Country:  best.Country,
	}

	if c.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			c.cache.Set(ctx, key, string(data), c.cacheTTL)
		}
	}
	return result, nil
}
