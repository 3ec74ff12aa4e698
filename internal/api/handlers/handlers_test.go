package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poolmate/carpool/internal/domain/ride"
	"github.com/poolmate/carpool/internal/service/geocode"
	"github.com/poolmate/carpool/internal/service/matching"
	"github.com/poolmate/carpool/internal/service/pricing"
	"github.com/poolmate/carpool/internal/service/routing"
	"github.com/poolmate/carpool/internal/service/weather"
	"github.com/poolmate/carpool/pkg/logger"
	"github.com/poolmate/carpool/pkg/monitoring"
	"github.com/poolmate/carpool/pkg/websocket"
)

// memoryRepo is an in-memory ride.Repository for handler tests
type memoryRepo struct {
	mu    sync.Mutex
	rides map[uuid.UUID]*ride.Ride
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rides: make(map[uuid.UUID]*ride.Ride)}
}

func (m *memoryRepo) Create(_ context.Context, r *ride.Ride) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.rides[r.ID] = &cp
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*ride.Ride, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rides[id]
	if !ok {
		return nil, ride.ErrRideNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memoryRepo) ListOpen(_ context.Context) ([]*ride.Ride, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*ride.Ride
	for _, r := range m.rides {
		if r.IsOpen() && r.Seats.Available > 0 {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memoryRepo) Close(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rides[id]
	if !ok {
		return ride.ErrRideNotFound
	}
	r.Status = ride.StatusClosed
	return nil
}

func (m *memoryRepo) ReserveSeats(_ context.Context, id uuid.UUID, count int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rides[id]
	if !ok || !r.IsOpen() || r.Seats.Available < count {
		return ride.ErrNotEnoughSeats
	}
	r.Seats.Available -= count
	return nil
}

// newTestEnv wires handlers against an in-memory repo with every external
// provider pointed at an unreachable address. Provider-dependent paths must
// still succeed by failing open.
func newTestEnv(t *testing.T) (*gin.Engine, *memoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.New(logger.Config{Level: "error", Format: "json"})
	require.NoError(t, err)

	const dead = "http://127.0.0.1:1"
	short := 50 * time.Millisecond

	repo := newMemoryRepo()
	weatherSvc := weather.NewService(
		weather.NewClient(weather.ClientConfig{BaseURL: dead, Timeout: short}, nil), log)
	h := NewHandlers(
		repo,
		matching.NewService(matching.DefaultConfig()),
		weatherSvc,
		geocode.NewClient(geocode.ClientConfig{BaseURL: dead, Timeout: short}, nil),
		routing.NewClient(routing.ClientConfig{BaseURL: dead, Timeout: short}),
		pricing.NewService(pricing.DefaultConfig()),
		log,
		websocket.NewHub(log),
		&monitoring.NewRelicApp{},
	)

	engine := gin.New()
	v1 := engine.Group("/v1")
	rides := v1.Group("/rides")
	rides.POST("", h.CreateRide)
	rides.GET("", h.ListRides)
	rides.POST("/match", h.MatchRides)
	rides.GET("/:id", h.GetRide)
	rides.POST("/:id/close", h.CloseRide)
	rides.POST("/:id/reserve", h.ReserveSeats)
	rides.GET("/:id/weather", h.GetRideWeather)

	return engine, repo
}

func seedRide(t *testing.T, repo *memoryRepo, lat, lng float64, seats int) *ride.Ride {
	t.Helper()
	r := &ride.Ride{
		ID:          uuid.New(),
		Driver:      ride.DriverInfo{Name: "Asha", Rating: 4.8},
		Start:       ride.GeoPoint{Label: "Start", Lat: lat, Lng: lng},
		Destination: ride.GeoPoint{Label: "End", Lat: lat - 0.05, Lng: lng + 0.05},
		Date:        "2026-09-01",
		Time:        "09:30",
		Seats:       ride.Seats{Total: seats, Available: seats},
		Status:      ride.StatusOpen,
	}
	require.NoError(t, repo.Create(context.Background(), r))
	return r
}

func doJSON(engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestCreateRideFailsOpenWithProvidersDown(t *testing.T) {
	engine, repo := newTestEnv(t)

	w := doJSON(engine, http.MethodPost, "/v1/rides", gin.H{
		"driver_name": "Asha",
		"start":       gin.H{"label": "CP", "lat": 28.63, "lng": 77.21},
		"destination": gin.H{"label": "Cyber City", "lat": 28.49, "lng": 77.08},
		"date":        "2026-09-01",
		"time":        "09:30",
		"seats_total": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Ride    ride.Ride `json:"ride"`
		Quote   json.RawMessage
		Weather struct {
			HasBadWeather       bool `json:"has_bad_weather"`
			SurchargeApplicable bool `json:"weather_surcharge_applicable"`
		} `json:"weather"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// Unreachable weather provider must never surcharge or block creation
	assert.False(t, resp.Weather.HasBadWeather)
	assert.False(t, resp.Weather.SurchargeApplicable)

	stored, err := repo.GetByID(context.Background(), resp.Ride.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Seats.Available)
	assert.Equal(t, ride.StatusOpen, stored.Status)
}

func TestCreateRideValidation(t *testing.T) {
	engine, _ := newTestEnv(t)

	w := doJSON(engine, http.MethodPost, "/v1/rides", gin.H{
		"driver_name": "Asha",
		"start":       gin.H{"lat": 28.63, "lng": 77.21},
		"destination": gin.H{"lat": 28.49, "lng": 77.08},
		"date":        "not-a-date",
		"time":        "09:30",
		"seats_total": 3,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatchRidesBuckets(t *testing.T) {
	engine, repo := newTestEnv(t)
	near := seedRide(t, repo, 28.6300, 77.2100, 3)
	seedRide(t, repo, 38.0000, 87.0000, 3) // far away, lands in nearby

	w := doJSON(engine, http.MethodPost, "/v1/rides/match", gin.H{
		"pickup":         gin.H{"lat": 28.63, "lng": 77.21},
		"drop":           gin.H{"lat": 28.58, "lng": 77.26},
		"seats_required": 1,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp matching.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Equal(t, 1, resp.Totals.Perfect)
	assert.Equal(t, near.ID, resp.Matches.Perfect[0].Ride.ID)
	assert.Equal(t, 1, resp.Totals.Nearby)
}

func TestMatchRidesRejectsBadPreferredTime(t *testing.T) {
	engine, _ := newTestEnv(t)

	w := doJSON(engine, http.MethodPost, "/v1/rides/match", gin.H{
		"pickup":         gin.H{"lat": 28.63, "lng": 77.21},
		"drop":           gin.H{"lat": 28.58, "lng": 77.26},
		"preferred_time": "next tuesday",
		"seats_required": 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRideNotFound(t *testing.T) {
	engine, _ := newTestEnv(t)

	w := doJSON(engine, http.MethodGet, "/v1/rides/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(engine, http.MethodGet, "/v1/rides/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCloseRideLifecycle(t *testing.T) {
	engine, repo := newTestEnv(t)
	r := seedRide(t, repo, 28.63, 77.21, 2)

	w := doJSON(engine, http.MethodPost, fmt.Sprintf("/v1/rides/%s/close", r.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := repo.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, ride.StatusClosed, stored.Status)

	// Closed rides no longer appear in search results
	w = doJSON(engine, http.MethodPost, "/v1/rides/match", gin.H{
		"pickup":         gin.H{"lat": 28.63, "lng": 77.21},
		"drop":           gin.H{"lat": 28.58, "lng": 77.26},
		"seats_required": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp matching.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Totals.Perfect+resp.Totals.Good+resp.Totals.Nearby)
}

func TestReserveSeats(t *testing.T) {
	engine, repo := newTestEnv(t)
	r := seedRide(t, repo, 28.63, 77.21, 2)

	w := doJSON(engine, http.MethodPost, fmt.Sprintf("/v1/rides/%s/reserve", r.ID), gin.H{"seats": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated ride.Ride
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 0, updated.Seats.Available)

	// Over-booking is rejected once capacity is gone
	w = doJSON(engine, http.MethodPost, fmt.Sprintf("/v1/rides/%s/reserve", r.ID), gin.H{"seats": 1})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetRideWeatherFailsOpen(t *testing.T) {
	engine, repo := newTestEnv(t)
	r := seedRide(t, repo, 28.63, 77.21, 2)

	w := doJSON(engine, http.MethodGet, fmt.Sprintf("/v1/rides/%s/weather", r.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result weather.RideResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.HasBadWeather)
	assert.Equal(t, "Unknown", result.StartWeather.Condition)
}
