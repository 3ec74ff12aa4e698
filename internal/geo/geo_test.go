package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKM_Zero(t *testing.T) {
	assert.Equal(t, 0.0, HaversineKM(28.6139, 77.2090, 28.6139, 77.2090))
}

func TestHaversineKM_KnownDistance(t *testing.T) {
	// Connaught Place to Gurgaon, roughly 25 km
	d := HaversineKM(28.6315, 77.2167, 28.4595, 77.0266)
	assert.InDelta(t, 26.5, d, 2.0)
}

func TestHaversineKM_NonFiniteCoordinates(t *testing.T) {
	assert.True(t, math.IsInf(HaversineKM(math.NaN(), 77.2, 28.6, 77.2), 1))
	assert.True(t, math.IsInf(HaversineKM(28.6, 77.2, math.Inf(1), 77.2), 1))
}
