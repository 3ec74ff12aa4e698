package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func getTestConfig() Config {
	return Config{
		BaseFare:      50.0,
		PerKMRate:     10.0,
		PerMinuteRate: 2.0,
	}
}

func TestEstimate_BaseCalculation(t *testing.T) {
	service := &Service{config: getTestConfig()}

	tests := []struct {
		name        string
		distanceKm  float64
		durationMin int
		seats       int
		expected    float64
		perSeat     float64
	}{
		{
			name:        "10km 20min 1 seat",
			distanceKm:  10.0,
			durationMin: 20,
			seats:       1,
			expected:    190.0, // 50 + (10*10) + (20*2)
			perSeat:     190.0,
		},
		{
			name:        "10km 20min 2 seats",
			distanceKm:  10.0,
			durationMin: 20,
			seats:       2,
			expected:    190.0,
			perSeat:     95.0,
		},
		{
			name:        "25km 40min 4 seats",
			distanceKm:  25.0,
			durationMin: 40,
			seats:       4,
			expected:    380.0, // 50 + (25*10) + (40*2)
			perSeat:     95.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := service.Estimate(tt.distanceKm, tt.durationMin, tt.seats, false)
			assert.Equal(t, tt.expected, quote.Total)
			assert.Equal(t, tt.perSeat, quote.PerSeat)
		})
	}
}

func TestEstimate_ZeroDistance(t *testing.T) {
	service := &Service{config: getTestConfig()}

	quote := service.Estimate(0, 10, 1, false)

	assert.Equal(t, 70.0, quote.Total, "zero distance should charge base + time")
	assert.GreaterOrEqual(t, quote.Total, 50.0, "total never drops below base fare")
}

func TestEstimate_SurchargeFlagDoesNotChangeTotal(t *testing.T) {
	service := &Service{config: getTestConfig()}

	calm := service.Estimate(10.0, 20, 2, false)
	stormy := service.Estimate(10.0, 20, 2, true)

	assert.Equal(t, calm.Total, stormy.Total, "the flag carries no magnitude")
	assert.False(t, calm.WeatherSurchargeApplicable)
	assert.True(t, stormy.WeatherSurchargeApplicable)
}

func TestEstimate_SeatCountClamped(t *testing.T) {
	service := &Service{config: getTestConfig()}

	quote := service.Estimate(10.0, 20, 0, false)
	assert.Equal(t, quote.Total, quote.PerSeat)
}

func BenchmarkEstimate(b *testing.B) {
	service := &Service{config: getTestConfig()}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		service.Estimate(10.0, 20, 2, false)
	}
}
