package geo

import "math"

const earthRadiusKM = 6371

// HaversineKM returns the great-circle distance between two points in
// kilometers. This is the fast in-memory proximity primitive used by the
// matcher, not a road distance; routing lookups go through the OSRM client.
//
// Non-finite coordinates yield +Inf so that a corrupt record always sorts
// behind every real one instead of failing the computation.
func HaversineKM(lat1, lng1, lat2, lng2 float64) float64 {
	if !finite(lat1) || !finite(lng1) || !finite(lat2) || !finite(lng2) {
		return math.Inf(1)
	}

	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
