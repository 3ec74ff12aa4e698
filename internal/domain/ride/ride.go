package ride

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
)

// Status represents ride lifecycle status
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// GeoPoint is a named geographic coordinate. Immutable once attached
// to a ride or a match request.
type GeoPoint struct {
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

// IsValid reports whether both coordinates are finite numbers.
func (p GeoPoint) IsValid() bool {
	return !math.IsNaN(p.Lat) && !math.IsInf(p.Lat, 0) &&
		!math.IsNaN(p.Lng) && !math.IsInf(p.Lng, 0)
}

// DriverInfo is the driver summary carried on a posted ride
type DriverInfo struct {
	Name     string  `json:"name"`
	Rating   float64 `json:"rating"`
	Verified bool    `json:"verified"`
}

// VehicleInfo describes the vehicle for a posted ride
type VehicleInfo struct {
	Make  string `json:"make,omitempty"`
	Model string `json:"model,omitempty"`
	Plate string `json:"plate,omitempty"`
}

// Seats tracks capacity on a ride. Available never exceeds Total.
type Seats struct {
	Total     int `json:"total"`
	Available int `json:"available"`
}

// Ride represents a carpool trip posted by a driver
type Ride struct {
	ID          uuid.UUID    `json:"id"`
	Driver      DriverInfo   `json:"driver"`
	Start       GeoPoint     `json:"start"`
	Destination GeoPoint     `json:"destination"`
	Date        string       `json:"date"` // YYYY-MM-DD
	Time        string       `json:"time"` // HH:MM, 24-hour
	Seats       Seats        `json:"seats"`
	Vehicle     *VehicleInfo `json:"vehicle,omitempty"`
	Status      Status       `json:"status"`
	FarePerSeat *float64     `json:"fare_per_seat,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Repository defines the interface for ride data access
type Repository interface {
	Create(ctx context.Context, ride *Ride) error
	GetByID(ctx context.Context, id uuid.UUID) (*Ride, error)
	ListOpen(ctx context.Context) ([]*Ride, error)
	Close(ctx context.Context, id uuid.UUID) error
	ReserveSeats(ctx context.Context, id uuid.UUID, count int) error
}

// IsOpen reports whether the ride can still be matched against
func (r *Ride) IsOpen() bool {
	return r.Status == StatusOpen
}

// HasSeats reports whether the ride can carry the requested party
func (r *Ride) HasSeats(required int) bool {
	return r.Seats.Available >= required
}

// ScheduledAt combines Date and Time into a single instant in UTC.
// The boolean is false when either field is missing or unparseable.
func (r *Ride) ScheduledAt() (time.Time, bool) {
	t, err := time.Parse("2006-01-02 15:04", r.Date+" "+r.Time)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Validate checks the invariants a ride must satisfy before it is stored
func (r *Ride) Validate() error {
	if r.Driver.Name == "" {
		return ErrInvalidDriverName
	}
	if !r.Start.IsValid() || !r.Destination.IsValid() {
		return ErrInvalidCoordinates
	}
	if r.Seats.Total < 1 || r.Seats.Available < 0 || r.Seats.Available > r.Seats.Total {
		return ErrInvalidSeats
	}
	if _, ok := r.ScheduledAt(); !ok {
		return ErrInvalidSchedule
	}
	return nil
}
