package ride

import "errors"

var (
	ErrRideNotFound       = errors.New("ride not found")
	ErrRideClosed         = errors.New("ride is closed")
	ErrInvalidDriverName  = errors.New("invalid driver name")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidSeats       = errors.New("invalid seat configuration")
	ErrInvalidSchedule    = errors.New("invalid ride schedule")
	ErrNotEnoughSeats     = errors.New("not enough seats available")
)
