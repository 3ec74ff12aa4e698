package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poolmate/carpool/internal/domain/ride"
	"github.com/poolmate/carpool/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error", Format: "json"})
	require.NoError(t, err)
	return log
}

func calmSnapshot() *Snapshot {
	temp := 24.0
	return &Snapshot{
		Temperature:            &temp,
		PrecipitationMMPerHour: 0,
		WeatherCode:            0,
		WindSpeedKMH:           10,
		VisibilityMeters:       10000,
	}
}

func TestClassify_NilSnapshotFailsOpen(t *testing.T) {
	a := Classify(nil)

	assert.False(t, a.IsBad, "absence of data must never penalize a ride")
	assert.Equal(t, "Unknown", a.Condition)
	assert.Nil(t, a.Raw)
}

func TestClassify_Thresholds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Snapshot)
		bad    bool
	}{
		{"calm conditions", func(s *Snapshot) {}, false},
		{"heavy rain above threshold", func(s *Snapshot) { s.PrecipitationMMPerHour = 3.0 }, true},
		{"rain exactly at threshold", func(s *Snapshot) { s.PrecipitationMMPerHour = 2.5 }, false},
		{"visibility just below 1000m", func(s *Snapshot) { s.VisibilityMeters = 999 }, true},
		{"visibility exactly 1000m", func(s *Snapshot) { s.VisibilityMeters = 1000 }, false},
		{"wind above 40 kmh", func(s *Snapshot) { s.WindSpeedKMH = 41 }, true},
		{"wind exactly 40 kmh", func(s *Snapshot) { s.WindSpeedKMH = 40 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := calmSnapshot()
			tt.mutate(snap)
			assert.Equal(t, tt.bad, Classify(snap).IsBad)
		})
	}
}

func TestClassify_SevereCodesForceBad(t *testing.T) {
	severe := []int{95, 96, 99, 71, 73, 75, 77, 85, 86, 66, 67}
	for _, code := range severe {
		snap := calmSnapshot()
		snap.WeatherCode = code
		assert.True(t, Classify(snap).IsBad, "code %d must be bad regardless of readings", code)
	}

	benign := []int{0, 1, 2, 3, 45, 51, 61, 63, 65, 80, 81, 82}
	for _, code := range benign {
		snap := calmSnapshot()
		snap.WeatherCode = code
		assert.False(t, Classify(snap).IsBad, "code %d alone should not be bad", code)
	}
}

func TestClassify_ConditionLabels(t *testing.T) {
	snap := calmSnapshot()
	assert.Equal(t, "Clear sky", Classify(snap).Condition)

	snap.WeatherCode = 95
	assert.Equal(t, "Thunderstorm", Classify(snap).Condition)

	snap.WeatherCode = 42
	a := Classify(snap)
	assert.Equal(t, "Unknown", a.Condition)
	assert.False(t, a.IsBad)
}

// stormServer serves a thunderstorm for every coordinate except latitude
// 99, which hangs past the client timeout.
func stormServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("latitude") == "99.0000" {
			time.Sleep(300 * time.Millisecond)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"current":{"temperature_2m":18.5,"precipitation":0.4,"weather_code":95,"wind_speed_10m":22,"visibility":8000}}`))
	}))
}

func TestAssessRide_BothEndpointsAssessed(t *testing.T) {
	srv := stormServer(t)
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: time.Second}, nil)
	svc := NewService(client, testLogger(t))

	res := svc.AssessRide(context.Background(),
		ride.GeoPoint{Label: "Hauz Khas", Lat: 28.55, Lng: 77.20},
		ride.GeoPoint{Label: "Noida", Lat: 28.57, Lng: 77.32},
	)

	assert.True(t, res.StartWeather.IsBad)
	assert.True(t, res.DestWeather.IsBad)
	assert.True(t, res.HasBadWeather)
	assert.Equal(t, res.HasBadWeather, res.SurchargeApplicable)
}

func TestAssessRide_TimeoutOnOneEndpointOnly(t *testing.T) {
	srv := stormServer(t)
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: 100 * time.Millisecond}, nil)
	svc := NewService(client, testLogger(t))

	res := svc.AssessRide(context.Background(),
		ride.GeoPoint{Label: "slow endpoint", Lat: 99, Lng: 77.20},
		ride.GeoPoint{Label: "Noida", Lat: 28.57, Lng: 77.32},
	)

	assert.Equal(t, "Unknown", res.StartWeather.Condition)
	assert.False(t, res.StartWeather.IsBad, "timed-out side fails open")
	assert.True(t, res.DestWeather.IsBad, "succeeded side keeps its real assessment")
	assert.True(t, res.HasBadWeather, "bad-weather flag reflects the succeeded side")
	assert.Equal(t, res.HasBadWeather, res.SurchargeApplicable)
}

func TestAssessRide_ProviderDownFailsOpen(t *testing.T) {
	srv := stormServer(t)
	srv.Close() // every call now fails

	client := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: 100 * time.Millisecond}, nil)
	svc := NewService(client, testLogger(t))

	res := svc.AssessRide(context.Background(),
		ride.GeoPoint{Lat: 28.55, Lng: 77.20},
		ride.GeoPoint{Lat: 28.57, Lng: 77.32},
	)

	assert.False(t, res.HasBadWeather)
	assert.False(t, res.SurchargeApplicable)
	assert.Equal(t, "Unknown", res.StartWeather.Condition)
	assert.Equal(t, "Unknown", res.DestWeather.Condition)
}

func TestAssessRide_FetchesConcurrently(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(150 * time.Millisecond)
		w.Write([]byte(`{"current":{"temperature_2m":20,"precipitation":0,"weather_code":0,"wind_speed_10m":5,"visibility":10000}}`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: time.Second}, nil)
	svc := NewService(client, testLogger(t))

	start := time.Now()
	svc.AssessRide(context.Background(),
		ride.GeoPoint{Lat: 28.55, Lng: 77.20},
		ride.GeoPoint{Lat: 28.57, Lng: 77.32},
	)
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 280*time.Millisecond,
		"two 150ms fetches must overlap, not run back to back")
}
