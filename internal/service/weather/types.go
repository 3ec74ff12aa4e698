package weather

// Snapshot is the strongly-typed view of one provider reading. It is
// fetched fresh per request, never persisted, and carries no identity.
type Snapshot struct {
	Temperature            *float64 `json:"temperature"`
	PrecipitationMMPerHour float64  `json:"precipitation_mm_per_hour"`
	WeatherCode            int      `json:"weather_code"`
	WindSpeedKMH           float64  `json:"wind_speed_kmh"`
	VisibilityMeters       float64  `json:"visibility_meters"`
}

// Assessment is the derived judgement for a single point. Recomputed per
// call, never stored.
type Assessment struct {
	Condition string    `json:"condition"`
	IsBad     bool      `json:"is_bad"`
	Raw       *Snapshot `json:"raw"`
}

// RideResult is the two-endpoint assessment for a posted ride.
// SurchargeApplicable is a pass-through of HasBadWeather; the surcharge
// magnitude lives in pricing, not here.
type RideResult struct {
	StartWeather        Assessment `json:"start_weather"`
	DestWeather         Assessment `json:"dest_weather"`
	HasBadWeather       bool       `json:"has_bad_weather"`
	SurchargeApplicable bool       `json:"weather_surcharge_applicable"`
}
