package matching

import (
	"encoding/json"
	"math"
	"time"

	"github.com/poolmate/carpool/internal/domain/ride"
)

// Quality is a match tier, ordered by desirability: perfect > good > nearby.
// Tiers partition the candidate set; a ride lands in exactly one per query.
type Quality string

const (
	QualityPerfect Quality = "perfect"
	QualityGood    Quality = "good"
	QualityNearby  Quality = "nearby"
)

// Request is a rider's search query. It is never persisted.
type Request struct {
	Pickup        ride.GeoPoint
	Drop          ride.GeoPoint
	PreferredTime *time.Time
	SeatsRequired int
}

// Validate rejects malformed queries before any matching runs.
// Provider and per-candidate failures are handled separately and never
// surface through here.
func (r *Request) Validate() error {
	if r.SeatsRequired < 1 {
		return ride.ErrInvalidSeats
	}
	if !r.Pickup.IsValid() || !r.Drop.IsValid() {
		return ride.ErrInvalidCoordinates
	}
	return nil
}

// Metrics carries the per-ride numbers behind a tier decision.
// Distances are +Inf for corrupt candidate records; TimeDiffMinutes is nil
// when the rider supplied no preferred time (treated as fully flexible).
type Metrics struct {
	PickupDistanceKM float64
	DropDistanceKM   float64
	TimeDiffMinutes  *float64
}

// combined is the tie-break key within a tier
func (m Metrics) combined() float64 {
	return m.PickupDistanceKM + m.DropDistanceKM
}

// MarshalJSON renders non-finite values as null, since JSON has no
// representation for +Inf.
func (m Metrics) MarshalJSON() ([]byte, error) {
	type wire struct {
		PickupDistanceKM *float64 `json:"pickup_distance_km"`
		DropDistanceKM   *float64 `json:"drop_distance_km"`
		TimeDiffMinutes  *float64 `json:"time_diff_minutes"`
	}
	w := wire{
		PickupDistanceKM: finiteOrNil(m.PickupDistanceKM),
		DropDistanceKM:   finiteOrNil(m.DropDistanceKM),
		TimeDiffMinutes:  m.TimeDiffMinutes,
	}
	if w.TimeDiffMinutes != nil {
		w.TimeDiffMinutes = finiteOrNil(*w.TimeDiffMinutes)
	}
	return json.Marshal(w)
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Match pairs a candidate ride with its tier and metrics
type Match struct {
	Ride    *ride.Ride `json:"ride"`
	Quality Quality    `json:"match_quality"`
	Metrics Metrics    `json:"metrics"`
}

// Buckets holds the per-tier match lists, best tier first
type Buckets struct {
	Perfect []Match `json:"perfect"`
	Good    []Match `json:"good"`
	Nearby  []Match `json:"nearby"`
}

// Totals mirrors the bucket lengths for quick display
type Totals struct {
	Perfect int `json:"perfect"`
	Good    int `json:"good"`
	Nearby  int `json:"nearby"`
}

// Response is the wire shape returned by the match endpoint
type Response struct {
	Matches Buckets `json:"matches"`
	Totals  Totals  `json:"totals"`
}

func newResponse() *Response {
	return &Response{
		Matches: Buckets{
			Perfect: []Match{},
			Good:    []Match{},
			Nearby:  []Match{},
		},
	}
}
