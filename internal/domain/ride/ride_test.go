package ride

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRide() *Ride {
	return &Ride{
		Driver:      DriverInfo{Name: "Asha", Rating: 4.8, Verified: true},
		Start:       GeoPoint{Label: "Connaught Place", Lat: 28.6315, Lng: 77.2167},
		Destination: GeoPoint{Label: "Cyber City", Lat: 28.4950, Lng: 77.0890},
		Date:        "2026-09-01",
		Time:        "09:30",
		Seats:       Seats{Total: 3, Available: 3},
		Status:      StatusOpen,
	}
}

func TestScheduledAt(t *testing.T) {
	r := validRide()

	at, ok := r.ScheduledAt()
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC), at)
}

func TestScheduledAtUnparseable(t *testing.T) {
	tests := []struct {
		name string
		date string
		time string
	}{
		{"empty fields", "", ""},
		{"garbage date", "tomorrow", "09:30"},
		{"12-hour time", "2026-09-01", "9:30 AM"},
		{"swapped fields", "09:30", "2026-09-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRide()
			r.Date = tt.date
			r.Time = tt.time

			_, ok := r.ScheduledAt()
			assert.False(t, ok)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validRide().Validate())
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Ride)
		wantErr error
	}{
		{"missing driver name", func(r *Ride) { r.Driver.Name = "" }, ErrInvalidDriverName},
		{"NaN start latitude", func(r *Ride) { r.Start.Lat = math.NaN() }, ErrInvalidCoordinates},
		{"infinite destination longitude", func(r *Ride) { r.Destination.Lng = math.Inf(1) }, ErrInvalidCoordinates},
		{"zero total seats", func(r *Ride) { r.Seats = Seats{Total: 0, Available: 0} }, ErrInvalidSeats},
		{"available exceeds total", func(r *Ride) { r.Seats = Seats{Total: 2, Available: 3} }, ErrInvalidSeats},
		{"negative available", func(r *Ride) { r.Seats.Available = -1 }, ErrInvalidSeats},
		{"bad schedule", func(r *Ride) { r.Time = "25:99" }, ErrInvalidSchedule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRide()
			tt.mutate(r)
			assert.ErrorIs(t, r.Validate(), tt.wantErr)
		})
	}
}

func TestHasSeats(t *testing.T) {
	r := validRide()
	r.Seats.Available = 2

	assert.True(t, r.HasSeats(1))
	assert.True(t, r.HasSeats(2))
	assert.False(t, r.HasSeats(3))
}

func TestIsOpen(t *testing.T) {
	r := validRide()
	assert.True(t, r.IsOpen())

	r.Status = StatusClosed
	assert.False(t, r.IsOpen())
}

func TestGeoPointIsValid(t *testing.T) {
	assert.True(t, GeoPoint{Lat: 0, Lng: 0}.IsValid())
	assert.False(t, GeoPoint{Lat: math.NaN(), Lng: 77.2}.IsValid())
	assert.False(t, GeoPoint{Lat: 28.6, Lng: math.Inf(-1)}.IsValid())
}
