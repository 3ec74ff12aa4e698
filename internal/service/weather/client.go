package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/poolmate/carpool/pkg/cache"
)

const (
	defaultBaseURL  = "https://api.open-meteo.com"
	defaultTimeout  = 5 * time.Second
	defaultCacheTTL = 5 * time.Minute
)

// ClientConfig holds provider settings
type ClientConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Client fetches current conditions from the Open-Meteo forecast API.
// Responses are decoded into the typed Snapshot at the boundary before
// any business logic sees them. A nil cache disables caching.
type Client struct {
	baseURL  string
	http     *http.Client
	cache    cache.Store
	cacheTTL time.Duration
}

// NewClient creates a weather client, filling unset config with defaults
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

// currentPayload mirrors the provider response. All fields are pointers so
// that missing optional values can be defaulted explicitly instead of
// silently reading zero values.
type currentPayload struct {
	Current *struct {
		Temperature   *float64 `json:"temperature_2m"`
		Precipitation *float64 `json:"precipitation"`
		WeatherCode   *int     `json:"weather_code"`
		WindSpeed     *float64 `json:"wind_speed_10m"`
		Visibility    *float64 `json:"visibility"`
	} `json:"current"`
}

// Current fetches the current conditions at a coordinate. Any failure
// (timeout, bad status, malformed payload, missing current block) is
// returned as an error; callers treat that as an absent reading.
func (c *Client) Current(ctx context.Context, lat, lng float64) (*Snapshot, error) {
	key := cacheKey(lat, lng)
	if c.cache != nil {
		if cached, ok := c.cache.Get(ctx, key); ok {
			var snap Snapshot
			if err := json.Unmarshal([]byte(cached), &snap); err == nil {
				return &snap, nil
			}
		}
	}

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lng))
	q.Set("current", "temperature_2m,precipitation,weather_code,wind_speed_10m,visibility")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forecast?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather provider returned status %d", resp.StatusCode)
	}

	var payload currentPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}
	if payload.Current == nil {
		return nil, fmt.Errorf("weather response missing current block")
	}

	snap := &Snapshot{
		Temperature:            payload.Current.Temperature,
		PrecipitationMMPerHour: valueOr(payload.Current.Precipitation, 0),
		WindSpeedKMH:           valueOr(payload.Current.WindSpeed, 0),
		VisibilityMeters:       valueOr(payload.Current.Visibility, 10000),
	}
	if payload.Current.WeatherCode != nil {
		snap.WeatherCode = *payload.Current.WeatherCode
	}

	if c.cache != nil {
		if data, err := json.Marshal(snap); err == nil {
			c.cache.Set(ctx, key, string(data), c.cacheTTL)
		}
	}
	return snap, nil
}

// cacheKey buckets lookups by rounded coordinate and hour so nearby
// repeat queries within the TTL share one provider call.
func cacheKey(lat, lng float64) string {
	return fmt.Sprintf("weather:%.2f:%.2f:%s", lat, lng, time.Now().UTC().Format("2006010215"))
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
