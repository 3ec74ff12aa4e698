package handlers

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/poolmate/carpool/internal/api/dto"
	"github.com/poolmate/carpool/internal/domain/ride"
	"github.com/poolmate/carpool/internal/geo"
	"github.com/poolmate/carpool/pkg/logger"
	"github.com/poolmate/carpool/pkg/websocket"
)

// fallbackSpeedKMH estimates trip duration when the routing provider is
// unreachable and only straight-line distance is available.
const fallbackSpeedKMH = 40.0

// CreateRide handles POST /v1/rides
func (h *Handlers) CreateRide(c *gin.Context) {
	var req dto.CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	now := time.Now().UTC()
	r := &ride.Ride{
		ID: uuid.New(),
		Driver: ride.DriverInfo{
			Name:     req.DriverName,
			Rating:   req.DriverRating,
			Verified: req.DriverVerified,
		},
		Start:       ride.GeoPoint{Label: req.Start.Label, Lat: req.Start.Lat, Lng: req.Start.Lng},
		Destination: ride.GeoPoint{Label: req.Destination.Label, Lat: req.Destination.Lat, Lng: req.Destination.Lng},
		Date:        req.Date,
		Time:        req.Time,
		Seats:       ride.Seats{Total: req.SeatsTotal, Available: req.SeatsTotal},
		Status:      ride.StatusOpen,
		FarePerSeat: req.FarePerSeat,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Vehicle != nil {
		r.Vehicle = &ride.VehicleInfo{
			Make:  req.Vehicle.Make,
			Model: req.Vehicle.Model,
			Plate: req.Vehicle.Plate,
		}
	}

	if err := r.Validate(); err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()

	// Road distance for fare estimation, falling back to haversine when
	// the OSRM provider is down. Ride creation never fails on provider
	// errors.
	distanceKM := geo.HaversineKM(r.Start.Lat, r.Start.Lng, r.Destination.Lat, r.Destination.Lng)
	durationMinutes := int(math.Round(distanceKM / fallbackSpeedKMH * 60))
	if route, err := h.Router.Drive(ctx, r.Start.Lat, r.Start.Lng, r.Destination.Lat, r.Destination.Lng); err == nil {
		distanceKM = route.DistanceMeters / 1000
		durationMinutes = int(math.Round(route.DurationSeconds / 60))
	} else {
		h.Logger.Warn("Routing provider unavailable, using haversine estimate", logger.Err(err))
		h.Monitor.RecordProviderFailure("osrm")
	}

	weatherResult := h.Weather.AssessRide(ctx, r.Start, r.Destination)
	h.Monitor.RecordWeatherAssessment(weatherResult.HasBadWeather)

	quote := h.Pricer.Estimate(distanceKM, durationMinutes, r.Seats.Total, weatherResult.SurchargeApplicable)

	if err := h.Rides.Create(ctx, r); err != nil {
		h.respondError(c, err)
		return
	}

	h.Logger.Info("Ride posted",
		logger.String("ride_id", r.ID.String()),
		logger.String("driver", r.Driver.Name),
		logger.Int("seats", r.Seats.Total),
		logger.Float64("distance_km", distanceKM),
		logger.Bool("weather_surcharge", weatherResult.SurchargeApplicable),
	)
	h.Monitor.RecordRidePosted(r.ID.String(), r.Seats.Total, weatherResult.SurchargeApplicable)

	h.Hub.Broadcast(websocket.Message{
		Type: "ride_posted",
		Data: gin.H{
			"ride_id":     r.ID.String(),
			"start":       r.Start,
			"destination": r.Destination,
			"date":        r.Date,
			"time":        r.Time,
			"seats":       r.Seats.Available,
		},
	})

	c.JSON(http.StatusCreated, gin.H{
		"ride":    r,
		"quote":   quote,
		"weather": weatherResult,
	})
}

// GetRide handles GET /v1/rides/:id
func (h *Handlers) GetRide(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ride ID"})
		return
	}

	r, err := h.Rides.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

// ListRides handles GET /v1/rides
func (h *Handlers) ListRides(c *gin.Context) {
	rides, err := h.Rides.ListOpen(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if rides == nil {
		rides = []*ride.Ride{}
	}

	c.JSON(http.StatusOK, gin.H{"rides": rides, "total": len(rides)})
}

// CloseRide handles POST /v1/rides/:id/close
func (h *Handlers) CloseRide(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ride ID"})
		return
	}

	if err := h.Rides.Close(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	h.Logger.Info("Ride closed", logger.String("ride_id", id.String()))
	h.Hub.BroadcastToRide(id.String(), websocket.Message{
		Type: "ride_closed",
		Data: gin.H{"ride_id": id.String()},
	})

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Ride closed"})
}

// ReserveSeats handles POST /v1/rides/:id/reserve
func (h *Handlers) ReserveSeats(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ride ID"})
		return
	}

	var req dto.ReserveSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Seats < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seats must be at least 1"})
		return
	}

	ctx := c.Request.Context()
	if err := h.Rides.ReserveSeats(ctx, id, req.Seats); err != nil {
		h.respondError(c, err)
		return
	}

	r, err := h.Rides.GetByID(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.Logger.Info("Seats reserved",
		logger.String("ride_id", id.String()),
		logger.Int("seats", req.Seats),
		logger.Int("remaining", r.Seats.Available),
	)
	h.Hub.BroadcastToRide(id.String(), websocket.Message{
		Type: "seats_reserved",
		Data: gin.H{"ride_id": id.String(), "seats_available": r.Seats.Available},
	})

	c.JSON(http.StatusOK, r)
}

// GetRideWeather handles GET /v1/rides/:id/weather
func (h *Handlers) GetRideWeather(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ride ID"})
		return
	}

	ctx := c.Request.Context()
	r, err := h.Rides.GetByID(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result := h.Weather.AssessRide(ctx, r.Start, r.Destination)
	h.Monitor.RecordWeatherAssessment(result.HasBadWeather)

	c.JSON(http.StatusOK, result)
}
