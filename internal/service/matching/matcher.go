package matching

import (
	"math"
	"sort"
	"time"

	"github.com/poolmate/carpool/internal/domain/ride"
	"github.com/poolmate/carpool/internal/geo"
)

// Service partitions open rides into quality tiers for a rider's search.
// It is pure and stateless: no I/O, no shared mutable state, safe for
// concurrent use across requests.
type Service struct {
	config Config
}

// Config holds the tier thresholds
type Config struct {
	PerfectRadiusKM   float64
	GoodRadiusKM      float64
	PerfectTimeWindow time.Duration
	GoodTimeWindow    time.Duration
}

// DefaultConfig returns the production thresholds: a perfect match is
// within 5 km on both ends and 60 minutes of the preferred time, a good
// match within 15 km and 180 minutes. Everything else is nearby.
func DefaultConfig() Config {
	return Config{
		PerfectRadiusKM:   5,
		GoodRadiusKM:      15,
		PerfectTimeWindow: 60 * time.Minute,
		GoodTimeWindow:    180 * time.Minute,
	}
}

// NewService creates a matching service, filling unset thresholds with
// the defaults.
func NewService(config Config) *Service {
	def := DefaultConfig()
	if config.PerfectRadiusKM <= 0 {
		config.PerfectRadiusKM = def.PerfectRadiusKM
	}
	if config.GoodRadiusKM <= 0 {
		config.GoodRadiusKM = def.GoodRadiusKM
	}
	if config.PerfectTimeWindow <= 0 {
		config.PerfectTimeWindow = def.PerfectTimeWindow
	}
	if config.GoodTimeWindow <= 0 {
		config.GoodTimeWindow = def.GoodTimeWindow
	}
	return &Service{config: config}
}

// Match scores every candidate against the request and buckets the
// results into tiers. Candidates without enough available seats are
// excluded entirely; a corrupt candidate record (non-finite coordinates,
// unparseable schedule) is forced into the nearby tier rather than
// aborting the batch. An empty candidate list yields all-zero totals.
func (s *Service) Match(req Request, candidates []*ride.Ride) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp := newResponse()
	for _, r := range candidates {
		if r == nil || !r.HasSeats(req.SeatsRequired) {
			continue
		}
		m := s.evaluate(req, r)
		switch m.Quality {
		case QualityPerfect:
			resp.Matches.Perfect = append(resp.Matches.Perfect, m)
		case QualityGood:
			resp.Matches.Good = append(resp.Matches.Good, m)
		default:
			resp.Matches.Nearby = append(resp.Matches.Nearby, m)
		}
	}

	sortByCombinedDistance(resp.Matches.Perfect)
	sortByCombinedDistance(resp.Matches.Good)
	sortByCombinedDistance(resp.Matches.Nearby)

	resp.Totals = Totals{
		Perfect: len(resp.Matches.Perfect),
		Good:    len(resp.Matches.Good),
		Nearby:  len(resp.Matches.Nearby),
	}
	return resp, nil
}

func (s *Service) evaluate(req Request, r *ride.Ride) Match {
	m := Metrics{
		PickupDistanceKM: geo.HaversineKM(req.Pickup.Lat, req.Pickup.Lng, r.Start.Lat, r.Start.Lng),
		DropDistanceKM:   geo.HaversineKM(req.Drop.Lat, req.Drop.Lng, r.Destination.Lat, r.Destination.Lng),
	}

	if req.PreferredTime != nil {
		// An unparseable schedule counts as infinitely far off in time,
		// which keeps the ride visible but only in the nearby tier.
		diff := math.Inf(1)
		if at, ok := r.ScheduledAt(); ok {
			diff = math.Abs(at.Sub(*req.PreferredTime).Minutes())
		}
		m.TimeDiffMinutes = &diff
	}

	return Match{Ride: r, Quality: s.classify(m), Metrics: m}
}

func (s *Service) classify(m Metrics) Quality {
	if s.within(m, s.config.PerfectRadiusKM, s.config.PerfectTimeWindow) {
		return QualityPerfect
	}
	if s.within(m, s.config.GoodRadiusKM, s.config.GoodTimeWindow) {
		return QualityGood
	}
	return QualityNearby
}

func (s *Service) within(m Metrics, radiusKM float64, window time.Duration) bool {
	if m.PickupDistanceKM > radiusKM || m.DropDistanceKM > radiusKM {
		return false
	}
	if m.TimeDiffMinutes == nil {
		return true
	}
	return *m.TimeDiffMinutes <= window.Minutes()
}

// sortByCombinedDistance orders a tier closest-first by pickup+drop
// distance, keeping input order on exact ties.
func sortByCombinedDistance(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Metrics.combined() < matches[j].Metrics.combined()
	})
}
