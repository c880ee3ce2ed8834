package weather

import (
	"context"
	"time"
)

// ProviderReading is a single provider's answer for a city search.
type ProviderReading struct {
	ProviderName string
	Timestamp    time.Time

	Name         string // city name as resolved by the provider
	TemperatureC float64
	HumidityPct  float64
	WindSpeedMS  float64
	Description  string
	Main         string
	Lat          float64
	Lon          float64
}

// Provider abstracts the upstream current-weather API.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, city string) (ProviderReading, error)
}

// RecentStore is the contract the recency list must satisfy.
type RecentStore interface {
	// Add appends c unless an entry with the same name exists. It reports
	// whether the list changed.
	Add(c RecentCity) bool
}
