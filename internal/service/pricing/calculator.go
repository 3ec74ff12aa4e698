package pricing

// Service estimates the suggested fare for a posted carpool ride
type Service struct {
	config Config
}

// Config holds the fare rates
type Config struct {
	BaseFare      float64
	PerKMRate     float64
	PerMinuteRate float64
}

// DefaultConfig returns the standard city rates
func DefaultConfig() Config {
	return Config{
		BaseFare:      50.0,
		PerKMRate:     10.0,
		PerMinuteRate: 2.0,
	}
}

// Quote is the fare breakdown for a ride. WeatherSurchargeApplicable
// carries the bad-weather decision through to the caller; no surcharge
// amount is folded into Total here.
type Quote struct {
	BaseFare                   float64 `json:"base_fare"`
	DistanceFare               float64 `json:"distance_fare"`
	TimeFare                   float64 `json:"time_fare"`
	Total                      float64 `json:"total"`
	PerSeat                    float64 `json:"per_seat"`
	WeatherSurchargeApplicable bool    `json:"weather_surcharge_applicable"`
}

// NewService creates a pricing service, filling unset rates with defaults
func NewService(config Config) *Service {
	def := DefaultConfig()
	if config.BaseFare <= 0 {
		config.BaseFare = def.BaseFare
	}
	if config.PerKMRate <= 0 {
		config.PerKMRate = def.PerKMRate
	}
	if config.PerMinuteRate <= 0 {
		config.PerMinuteRate = def.PerMinuteRate
	}
	return &Service{config: config}
}

// Estimate computes the suggested fare for a trip, split across the
// seats being offered.
func (s *Service) Estimate(distanceKM float64, durationMinutes int, seats int, weatherSurcharge bool) *Quote {
	if seats < 1 {
		seats = 1
	}

	distanceFare := distanceKM * s.config.PerKMRate
	timeFare := float64(durationMinutes) * s.config.PerMinuteRate
	total := s.config.BaseFare + distanceFare + timeFare

	return &Quote{
		BaseFare:                   s.config.BaseFare,
		DistanceFare:               distanceFare,
		TimeFare:                   timeFare,
		Total:                      total,
		PerSeat:                    total / float64(seats),
		WeatherSurchargeApplicable: weatherSurcharge,
	}
}
