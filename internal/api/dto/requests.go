package dto

// PointRequest is a labelled coordinate pair as sent by clients
type PointRequest struct {
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

// MatchRideRequest represents a rider searching for open rides
type MatchRideRequest struct {
	Pickup        PointRequest `json:"pickup" binding:"required"`
	Drop          PointRequest `json:"drop" binding:"required"`
	PreferredTime string       `json:"preferred_time,omitempty"` // RFC 3339, optional
	SeatsRequired int          `json:"seats_required"`
}

// CreateRideRequest represents a driver posting a new ride
type CreateRideRequest struct {
	DriverName     string          `json:"driver_name" binding:"required"`
	DriverRating   float64         `json:"driver_rating"`
	DriverVerified bool            `json:"driver_verified"`
	Start          PointRequest    `json:"start" binding:"required"`
	Destination    PointRequest    `json:"destination" binding:"required"`
	Date           string          `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string          `json:"time" binding:"required"` // HH:MM
	SeatsTotal     int             `json:"seats_total" binding:"required"`
	FarePerSeat    *float64        `json:"fare_per_seat,omitempty"`
	Vehicle        *VehicleRequest `json:"vehicle,omitempty"`
}

// VehicleRequest describes the driver's vehicle
type VehicleRequest struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Plate string `json:"plate"`
}

// ReserveSeatsRequest books seats on an open ride
type ReserveSeatsRequest struct {
	Seats int `json:"seats" binding:"required"`
}

// GeocodeRequest resolves a free-text place name
type GeocodeRequest struct {
	Query string `form:"q" binding:"required"`
}

// RouteRequest asks for a driving route between two points
type RouteRequest struct {
	FromLat float64 `form:"from_lat" binding:"required"`
	FromLng float64 `form:"from_lng" binding:"required"`
	ToLat   float64 `form:"to_lat" binding:"required"`
	ToLng   float64 `form:"to_lng" binding:"required"`
}

// Error response
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
