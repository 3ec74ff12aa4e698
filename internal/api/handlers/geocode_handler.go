package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/poolmate/carpool/pkg/logger"
)

// GeocodePlace handles GET /v1/geocode
func (h *Handlers) GeocodePlace(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q query parameter is required"})
		return
	}

	result, err := h.Geocoder.Lookup(c.Request.Context(), query)
	if err != nil {
		h.Logger.Warn("Geocode lookup failed",
			logger.String("query", query),
			logger.Err(err),
		)
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
