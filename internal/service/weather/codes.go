package weather

// Bad-weather thresholds. A reading past any one of these marks the
// endpoint as bad on its own.
const (
	heavyRainMMPerHour   = 2.5
	poorVisibilityMeters = 1000
	strongWindKMH        = 40
)

// Severe WMO weather codes. Any of these forces a bad assessment
// regardless of the numeric readings.
var (
	thunderstormCodes = map[int]struct{}{95: {}, 96: {}, 99: {}}
	snowCodes         = map[int]struct{}{71: {}, 73: {}, 75: {}, 77: {}, 85: {}, 86: {}}
	freezingRainCodes = map[int]struct{}{66: {}, 67: {}}
)

// conditionLabels maps WMO weather codes to human-readable descriptions
var conditionLabels = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// Describe returns the label for a WMO code. Unknown codes map to
// "Unknown", never an error.
func Describe(code int) string {
	if label, ok := conditionLabels[code]; ok {
		return label
	}
	return "Unknown"
}

func isSevereCode(code int) bool {
	if _, ok := thunderstormCodes[code]; ok {
		return true
	}
	if _, ok := snowCodes[code]; ok {
		return true
	}
	_, ok := freezingRainCodes[code]
	return ok
}
