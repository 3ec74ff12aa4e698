package weather

import (
	"context"
	"sync"

	"github.com/poolmate/carpool/internal/domain/ride"
	"github.com/poolmate/carpool/pkg/logger"
)

// Service turns provider readings into surcharge decisions for rides.
// Provider failures fail open: absence of data never marks weather as bad,
// so a third-party outage never penalizes drivers or riders.
type Service struct {
	client *Client
	logger *logger.Logger
}

// NewService creates a weather assessment service
func NewService(client *Client, log *logger.Logger) *Service {
	return &Service{client: client, logger: log}
}

// Classify derives an assessment from a snapshot. A nil snapshot means the
// reading is unavailable and is assessed as "Unknown", not bad.
func Classify(snap *Snapshot) Assessment {
	if snap == nil {
		return Assessment{Condition: "Unknown", IsBad: false}
	}

	bad := snap.PrecipitationMMPerHour > heavyRainMMPerHour ||
		isSevereCode(snap.WeatherCode) ||
		snap.VisibilityMeters < poorVisibilityMeters ||
		snap.WindSpeedKMH > strongWindKMH

	return Assessment{
		Condition: Describe(snap.WeatherCode),
		IsBad:     bad,
		Raw:       snap,
	}
}

// Assess fetches and classifies current conditions at one coordinate
func (s *Service) Assess(ctx context.Context, lat, lng float64) Assessment {
	snap, err := s.client.Current(ctx, lat, lng)
	if err != nil {
		s.logger.Warn("Weather lookup failed, assessing as unknown",
			logger.Float64("lat", lat),
			logger.Float64("lng", lng),
			logger.Err(err),
		)
		return Classify(nil)
	}
	return Classify(snap)
}

// AssessRide assesses both endpoints of a ride concurrently. The two
// fetches carry independent timeouts; a timeout on one side yields an
// unknown assessment for that side only. The result is always complete
// and well-formed, even if a fetch panics, so pricing is never blocked
// by the weather provider.
func (s *Service) AssessRide(ctx context.Context, start, dest ride.GeoPoint) RideResult {
	var startA, destA Assessment

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		startA = s.assessSafely(ctx, start)
	}()
	go func() {
		defer wg.Done()
		destA = s.assessSafely(ctx, dest)
	}()
	wg.Wait()

	bad := startA.IsBad || destA.IsBad
	return RideResult{
		StartWeather:        startA,
		DestWeather:         destA,
		HasBadWeather:       bad,
		SurchargeApplicable: bad,
	}
}

func (s *Service) assessSafely(ctx context.Context, p ride.GeoPoint) (a Assessment) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Weather assessment panicked, assessing as unknown",
				logger.String("label", p.Label),
				logger.Any("panic", r),
			)
			a = Classify(nil)
		}
	}()
	return s.Assess(ctx, p.Lat, p.Lng)
}
