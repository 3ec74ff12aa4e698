package handlers

import (
	"github.com/poolmate/carpool/internal/domain/ride"
	"github.com/poolmate/carpool/internal/service/geocode"
	"github.com/poolmate/carpool/internal/service/matching"
	"github.com/poolmate/carpool/internal/service/pricing"
	"github.com/poolmate/carpool/internal/service/routing"
	"github.com/poolmate/carpool/internal/service/weather"
	"github.com/poolmate/carpool/pkg/logger"
	"github.com/poolmate/carpool/pkg/monitoring"
	"github.com/poolmate/carpool/pkg/websocket"
)

// Handlers holds all handler dependencies
type Handlers struct {
	Rides    ride.Repository
	Matcher  *matching.Service
	Weather  *weather.Service
	Geocoder *geocode.Client
	Router   *routing.Client
	Pricer   *pricing.Service
	Logger   *logger.Logger
	Hub      *websocket.Hub
	Monitor  *monitoring.NewRelicApp
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	rides ride.Repository,
	matcher *matching.Service,
	weatherSvc *weather.Service,
	geocoder *geocode.Client,
	router *routing.Client,
	pricer *pricing.Service,
	log *logger.Logger,
	hub *websocket.Hub,
	monitor *monitoring.NewRelicApp,
) *Handlers {
	return &Handlers{
		Rides:    rides,
		Matcher:  matcher,
		Weather:  weatherSvc,
		Geocoder: geocoder,
		Router:   router,
		Pricer:   pricer,
		Logger:   log,
		Hub:      hub,
		Monitor:  monitor,
	}
}
