package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/poolmate/carpool/internal/api/dto"
	"github.com/poolmate/carpool/pkg/logger"
)

// GetRoute handles GET /v1/route
func (h *Handlers) GetRoute(c *gin.Context) {
	var req dto.RouteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from_lat, from_lng, to_lat and to_lng are required"})
		return
	}

	route, err := h.Router.Drive(c.Request.Context(), req.FromLat, req.FromLng, req.ToLat, req.ToLng)
	if err != nil {
		h.Logger.Warn("Route lookup failed", logger.Err(err))
		h.Monitor.RecordProviderFailure("osrm")
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"distance_km":      route.DistanceMeters / 1000,
		"duration_minutes": route.DurationSeconds / 60,
	})
}
