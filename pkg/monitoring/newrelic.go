package monitoring

import (
	"fmt"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// Config holds New Relic configuration
type Config struct {
	LicenseKey string
	AppName    string
	Enabled    bool
	LogLevel   string
}

// NewRelicApp wraps the New Relic application
type NewRelicApp struct {
	*newrelic.Application
	enabled bool
}

// New creates a new New Relic application
func New(cfg Config) (*NewRelicApp, error) {
	if !cfg.Enabled || cfg.LicenseKey == "" {
		return &NewRelicApp{nil, false}, nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.AppName),
		newrelic.ConfigLicense(cfg.LicenseKey),
		newrelic.ConfigAppLogForwardingEnabled(true),
		newrelic.ConfigDistributedTracerEnabled(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create New Relic application: %w", err)
	}

	return &NewRelicApp{app, true}, nil
}

// RecordCustomEvent records a custom event
func (nr *NewRelicApp) RecordCustomEvent(eventType string, params map[string]interface{}) {
	if !nr.enabled || nr.Application == nil {
		return
	}
	nr.Application.RecordCustomEvent(eventType, params)
}

// RecordCustomMetric records a custom metric
func (nr *NewRelicApp) RecordCustomMetric(name string, value float64) {
	if !nr.enabled || nr.Application == nil {
		return
	}
	nr.Application.RecordCustomMetric(name, value)
}

// Shutdown gracefully shuts down the New Relic application
func (nr *NewRelicApp) Shutdown(timeout time.Duration) {
	if !nr.enabled || nr.Application == nil {
		return
	}
	nr.Application.Shutdown(timeout)
}

// IsEnabled returns whether New Relic is enabled
func (nr *NewRelicApp) IsEnabled() bool {
	return nr.enabled
}

// Custom metric helpers

// RecordMatchCompleted records the tier breakdown and latency of one
// ride search.
func (nr *NewRelicApp) RecordMatchCompleted(perfect, good, nearby int, latencyMs float64) {
	nr.RecordCustomEvent("RideMatchCompleted", map[string]interface{}{
		"perfect":    perfect,
		"good":       good,
		"nearby":     nearby,
		"latency_ms": latencyMs,
	})
	nr.RecordCustomMetric("custom/matching/latency_ms", latencyMs)
}

// RecordRidePosted records a driver posting a new ride
func (nr *NewRelicApp) RecordRidePosted(rideID string, seats int, surcharge bool) {
	nr.RecordCustomEvent("RidePosted", map[string]interface{}{
		"ride_id":           rideID,
		"seats":             seats,
		"weather_surcharge": surcharge,
		"timestamp":         time.Now().Unix(),
	})
}

// RecordWeatherAssessment records a two-endpoint surcharge decision
func (nr *NewRelicApp) RecordWeatherAssessment(hasBadWeather bool) {
	value := 0.0
	if hasBadWeather {
		value = 1.0
	}
	nr.RecordCustomMetric("custom/weather/bad_weather", value)
}

// RecordProviderFailure records a recovered upstream-provider failure
func (nr *NewRelicApp) RecordProviderFailure(provider string) {
	nr.RecordCustomMetric(fmt.Sprintf("custom/provider/%s/failures", provider), 1)
}
