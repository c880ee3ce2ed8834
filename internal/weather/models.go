package weather

import (
	"time"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// Coordinates is a WGS84 position in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RecentCity is an entry of the recency list. Entries are unique by Name.
type RecentCity struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Coordinates returns the entry position.
func (c RecentCity) Coordinates() Coordinates {
	return Coordinates{Lat: c.Lat, Lon: c.Lon}
}

// Snapshot is the current weather for one city. It is replaced wholesale on
// every successful lookup and never mutated.
type Snapshot struct {
	Name        string      `json:"name"`
	Temperature float64     `json:"temperatureC"`
	Humidity    float64     `json:"humidityPercent"`
	WindSpeed   float64     `json:"windSpeed"` // m/s
	Description string      `json:"description"`
	Main        string      `json:"main"` // upstream category, e.g. "Clouds"
	Condition   Condition   `json:"condition"`
	Coord       Coordinates `json:"coord"`
	Timestamp   time.Time   `json:"timestamp"` // always UTC
	Provider    string      `json:"provider"`
}

// RecentCity returns the recency entry describing this snapshot.
func (s Snapshot) RecentCity() RecentCity {
	return RecentCity{Name: s.Name, Lat: s.Coord.Lat, Lon: s.Coord.Lon}
}
