package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/poolmate/carpool/internal/api/handlers"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, h *handlers.Handlers, nrApp *newrelic.Application) {
	// Add New Relic middleware if enabled
	if nrApp != nil {
		r.Use(nrgin.Middleware(nrApp))
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":      "healthy",
			"connections": h.Hub.ActiveConnections(),
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// WebSocket connection
		v1.GET("/ws", h.HandleWebSocket)

		// Ride endpoints
		rides := v1.Group("/rides")
		{
			rides.POST("", h.CreateRide)
			rides.GET("", h.ListRides)
			rides.POST("/match", h.MatchRides)
			rides.GET("/:id", h.GetRide)
			rides.POST("/:id/close", h.CloseRide)
			rides.POST("/:id/reserve", h.ReserveSeats)
			rides.GET("/:id/weather", h.GetRideWeather)
		}

		// Provider lookups
		v1.GET("/weather", h.GetWeather)
		v1.GET("/geocode", h.GeocodePlace)
		v1.GET("/route", h.GetRoute)
	}
}
