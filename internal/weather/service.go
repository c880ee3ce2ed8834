package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// ErrLookupFailed is the single failure kind of a city lookup. Unknown
// cities and transport failures are not distinguished by callers.
var ErrLookupFailed = errors.New("weather lookup failed")

var errEmptyCity = errors.New("city name is empty")

// Service fetches current weather for a city and records the city in the
// recency list.
type Service struct {
	provider Provider
	recent   RecentStore
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new Service. recent may be nil.
func NewService(provider Provider, recent RecentStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		provider: provider,
		recent:   recent,
		logger:   logger,
		now:      time.Now,
	}
}

// Lookup performs one upstream request for city on behalf of the user. On
// success the resolved city is appended to the recency list; on failure the
// returned error wraps ErrLookupFailed and the list is left untouched.
func (s *Service) Lookup(ctx context.Context, city string) (Snapshot, error) {
	snapshot, err := s.Current(ctx, city)
	if err != nil {
		return Snapshot{}, err
	}

	if s.recent != nil && s.recent.Add(snapshot.RecentCity()) {
		s.logger.Debug("recent city added", "city", snapshot.Name)
	}
	return snapshot, nil
}

// Current fetches the weather for city without recording it as recent.
func (s *Service) Current(ctx context.Context, city string) (Snapshot, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrLookupFailed, errEmptyCity)
	}
	if s.provider == nil {
		return Snapshot{}, fmt.Errorf("%w: no weather provider configured", ErrLookupFailed)
	}

	r, err := s.provider.Fetch(ctx, city)
	if err != nil {
		s.logger.Warn("weather lookup failed",
			"city", city,
			"provider", s.provider.Name(),
			"error", err)
		return Snapshot{}, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	snapshot := s.snapshotFromReading(city, r)

	s.logger.Info("weather lookup succeeded",
		"city", snapshot.Name,
		"temperature", snapshot.Temperature,
		"condition", snapshot.Condition)
	return snapshot, nil
}

func (s *Service) snapshotFromReading(query string, r ProviderReading) Snapshot {
	name := r.Name
	if name == "" {
		name = query
	}
	ts := r.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}
	return Snapshot{
		Name:        name,
		Temperature: r.TemperatureC,
		Humidity:    r.HumidityPct,
		WindSpeed:   r.WindSpeedMS,
		Description: r.Description,
		Main:        r.Main,
		Condition:   NormalizeCondition(r.Main),
		Coord:       Coordinates{Lat: r.Lat, Lon: r.Lon},
		Timestamp:   ts.UTC(),
		Provider:    r.ProviderName,
	}
}
