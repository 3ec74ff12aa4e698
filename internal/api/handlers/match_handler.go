package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/poolmate/carpool/internal/api/dto"
	"github.com/poolmate/carpool/internal/domain/ride"
	"github.com/poolmate/carpool/internal/service/matching"
	"github.com/poolmate/carpool/pkg/logger"
)

// MatchRides handles POST /v1/rides/match
func (h *Handlers) MatchRides(c *gin.Context) {
	var req dto.MatchRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	var preferred *time.Time
	if req.PreferredTime != "" {
		t, err := time.Parse(time.RFC3339, req.PreferredTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "preferred_time must be RFC 3339"})
			return
		}
		preferred = &t
	}

	seats := req.SeatsRequired
	if seats == 0 {
		seats = 1
	}

	matchReq := matching.Request{
		Pickup:        ride.GeoPoint{Label: req.Pickup.Label, Lat: req.Pickup.Lat, Lng: req.Pickup.Lng},
		Drop:          ride.GeoPoint{Label: req.Drop.Label, Lat: req.Drop.Lat, Lng: req.Drop.Lng},
		PreferredTime: preferred,
		SeatsRequired: seats,
	}

	candidates, err := h.Rides.ListOpen(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	started := time.Now()
	result, err := h.Matcher.Match(matchReq, candidates)
	if err != nil {
		h.respondError(c, err)
		return
	}
	latency := time.Since(started)

	h.Logger.Info("Ride search completed",
		logger.Int("candidates", len(candidates)),
		logger.Int("perfect", result.Totals.Perfect),
		logger.Int("good", result.Totals.Good),
		logger.Int("nearby", result.Totals.Nearby),
		logger.Duration("latency", latency),
	)
	h.Monitor.RecordMatchCompleted(
		result.Totals.Perfect, result.Totals.Good, result.Totals.Nearby,
		float64(latency.Milliseconds()),
	)

	c.JSON(http.StatusOK, result)
}
