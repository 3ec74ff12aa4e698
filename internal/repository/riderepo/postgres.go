package riderepo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/poolmate/carpool/internal/domain/ride"
)

// Postgres implements ride.Repository on top of database/sql
type Postgres struct {
	db *sql.DB
}

// NewPostgres creates a Postgres-backed ride store
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const rideColumns = `
	id, driver_name, driver_rating, driver_verified,
	start_label, start_lat, start_lng,
	dest_label, dest_lat, dest_lng,
	ride_date, ride_time, seats_total, seats_available,
	vehicle_make, vehicle_model, vehicle_plate,
	status, fare_per_seat, created_at, updated_at`

// Create inserts a new ride
func (p *Postgres) Create(ctx context.Context, r *ride.Ride) error {
	var make, model, plate sql.NullString
	if r.Vehicle != nil {
		make = sql.NullString{String: r.Vehicle.Make, Valid: r.Vehicle.Make != ""}
		model = sql.NullString{String: r.Vehicle.Model, Valid: r.Vehicle.Model != ""}
		plate = sql.NullString{String: r.Vehicle.Plate, Valid: r.Vehicle.Plate != ""}
	}

	var fare sql.NullFloat64
	if r.FarePerSeat != nil {
		fare = sql.NullFloat64{Float64: *r.FarePerSeat, Valid: true}
	}

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO rides (
			id, driver_name, driver_rating, driver_verified,
			start_label, start_lat, start_lng,
			dest_label, dest_lat, dest_lng,
			ride_date, ride_time, seats_total, seats_available,
			vehicle_make, vehicle_model, vehicle_plate,
			status, fare_per_seat, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
	`,
		r.ID, r.Driver.Name, r.Driver.Rating, r.Driver.Verified,
		r.Start.Label, r.Start.Lat, r.Start.Lng,
		r.Destination.Label, r.Destination.Lat, r.Destination.Lng,
		r.Date, r.Time, r.Seats.Total, r.Seats.Available,
		make, model, plate,
		r.Status, fare, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ride: %w", err)
	}
	return nil
}

// GetByID fetches a single ride
func (p *Postgres) GetByID(ctx context.Context, id uuid.UUID) (*ride.Ride, error) {
	row := p.db.QueryRowContext(ctx,
		`SELECT `+rideColumns+` FROM rides WHERE id = $1`, id)

	r, err := scanRide(row)
	if err == sql.ErrNoRows {
		return nil, ride.ErrRideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get ride: %w", err)
	}
	return r, nil
}

// ListOpen returns the open rides that still have seats. This is the
// candidate set the matcher scores against.
func (p *Postgres) ListOpen(ctx context.Context) ([]*ride.Ride, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT `+rideColumns+`
		 FROM rides
		 WHERE status = 'open' AND seats_available > 0
		 ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list open rides: %w", err)
	}
	defer rows.Close()

	var rides []*ride.Ride
	for rows.Next() {
		r, err := scanRide(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ride: %w", err)
		}
		rides = append(rides, r)
	}
	return rides, rows.Err()
}

// Close marks a ride closed
func (p *Postgres) Close(ctx context.Context, id uuid.UUID) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE rides SET status = 'closed', updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("close ride: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ride.ErrRideNotFound
	}
	return nil
}

// ReserveSeats atomically decrements availability. The WHERE clause keeps
// seats_available from ever going negative under concurrent bookings.
func (p *Postgres) ReserveSeats(ctx context.Context, id uuid.UUID, count int) error {
	res, err := p.db.ExecContext(ctx, `
		UPDATE rides
		SET seats_available = seats_available - $2, updated_at = NOW()
		WHERE id = $1 AND status = 'open' AND seats_available >= $2
	`, id, count)
	if err != nil {
		return fmt.Errorf("reserve seats: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ride.ErrNotEnoughSeats
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRide(row scanner) (*ride.Ride, error) {
	var r ride.Ride
	var make, model, plate sql.NullString
	var fare sql.NullFloat64

	err := row.Scan(
		&r.ID, &r.Driver.Name, &r.Driver.Rating, &r.Driver.Verified,
		&r.Start.Label, &r.Start.Lat, &r.Start.Lng,
		&r.Destination.Label, &r.Destination.Lat, &r.Destination.Lng,
		&r.Date, &r.Time, &r.Seats.Total, &r.Seats.Available,
		&make, &model, &plate,
		&r.Status, &fare, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if make.Valid || model.Valid || plate.Valid {
		r.Vehicle = &ride.VehicleInfo{
			Make:  make.String,
			Model: model.String,
			Plate: plate.String,
		}
	}
	if fare.Valid {
		r.FarePerSeat = &fare.Float64
	}
	return &r, nil
}
