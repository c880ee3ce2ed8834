package weather

import "github.com/i474232898/weather-lookup/internal/common"

// NormalizeCondition maps an upstream category ("Clear", "Clouds", ...) to a
// normalized Condition.
func NormalizeCondition(main string) Condition {
	switch main {
	case "Clear":
		return ConditionClear
	case "Clouds":
		return ConditionCloudy
	case "Rain", "Drizzle":
		return ConditionRain
	case "Snow":
		return ConditionSnow
	case "Thunderstorm", "Squall", "Tornado":
		return ConditionStorm
	}
	if common.HasAny(main, "mist", "fog", "haze", "smoke", "dust", "sand", "ash") {
		return ConditionMist
	}
	return ConditionUnknown
}

// Icon returns the emoji shown next to the city name for an upstream category.
func Icon(main string) string {
	switch main {
	case "Clear":
		return "☀️"
	case "Clouds":
		return "☁️"
	case "Rain":
		return "🌧️"
	case "Snow":
		return "❄️"
	case "Thunderstorm":
		return "⛈️"
	case "Drizzle":
		return "🌦️"
	default:
		return "🌫️"
	}
}

// Background returns the page colour for an upstream category.
func Background(main string) string {
	switch main {
	case "Clear":
		return "lightblue"
	case "Clouds":
		return "lightgray"
	case "Rain":
		return "lightgreen"
	case "Snow":
		return "darkgray"
	case "Thunderstorm":
		return "lightblue"
	case "Drizzle":
		return "lightcyan"
	default:
		return "black"
	}
}
