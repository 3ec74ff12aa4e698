package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetWeather handles GET /v1/weather
func (h *Handlers) GetWeather(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng query parameters are required"})
		return
	}

	assessment := h.Weather.Assess(c.Request.Context(), lat, lng)
	h.Monitor.RecordWeatherAssessment(assessment.IsBad)

	c.JSON(http.StatusOK, assessment)
}
