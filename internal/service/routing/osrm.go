package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://router.project-osrm.org"
	defaultTimeout = 5 * time.Second
)

// Route is a driving route summary between two points
type Route struct {
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// ClientConfig holds OSRM settings
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Client queries an OSRM server for point-to-point road distance. This is
// the real-route lookup used for fare estimation; the matcher deliberately
// sticks to haversine and never calls it.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an OSRM client, filling unset config with defaults
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// Drive returns the driving route between two coordinates.
// OSRM expects lng,lat ordering in the path.
func (c *Client) Drive(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (*Route, error) {
	url := fmt.Sprintf("%s/route/v1/driving/%.6f,%.6f;%.6f,%.6f?overview=false",
		c.baseURL, fromLng, fromLat, toLng, toLat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build route request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("route request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Code   string `json:"code"`
		Routes []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode route response: %w", err)
	}
	if payload.Code != "Ok" || len(payload.Routes) == 0 {
		return nil, fmt.Errorf("osrm no route: %s", payload.Code)
	}

	return &Route{
		DistanceMeters:  payload.Routes[0].Distance,
		DurationSeconds: payload.Routes[0].Duration,
	}, nil
}
