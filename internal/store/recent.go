package store

import (
	"errors"
	"sync"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// DefaultRecentLimit is the recency list bound.
const DefaultRecentLimit = 5

var (
	// ErrNotFound is returned when the recency list holds no entry.
	ErrNotFound = errors.New("no recent cities")
)

// RecentStore is a concurrency-safe, bounded, insertion-ordered set of
// recently looked-up cities. The most recent entry is last.
type RecentStore struct {
	mu sync.RWMutex

	cities  []weather.RecentCity
	maxSize int
}

// NewRecentStore creates an empty store holding at most maxSize entries.
// If maxSize is <= 0, DefaultRecentLimit is used.
func NewRecentStore(maxSize int) *RecentStore {
	if maxSize <= 0 {
		maxSize = DefaultRecentLimit
	}
	return &RecentStore{
		cities:  make([]weather.RecentCity, 0, maxSize+1),
		maxSize: maxSize,
	}
}

// Add appends c unless a city with the same name is already present, then
// evicts the oldest entries beyond the bound. It reports whether the list
// changed.
func (s *RecentStore) Add(c weather.RecentCity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(c.Name) >= 0 {
		return false
	}

	s.cities = append(s.cities, c)

	// Enforce retention by count.
	if len(s.cities) > s.maxSize {
		over := len(s.cities) - s.maxSize
		s.cities = append(s.cities[:0], s.cities[over:]...)
	}
	return true
}

// List returns a copy of the entries, oldest first.
func (s *RecentStore) List() []weather.RecentCity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]weather.RecentCity, len(s.cities))
	copy(out, s.cities)
	return out
}

// Latest returns the most recently added city.
func (s *RecentStore) Latest() (weather.RecentCity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.cities) == 0 {
		return weather.RecentCity{}, ErrNotFound
	}
	return s.cities[len(s.cities)-1], nil
}

// Get returns the entry named name.
func (s *RecentStore) Get(name string) (weather.RecentCity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexLocked(name)
	if i < 0 {
		return weather.RecentCity{}, ErrNotFound
	}
	return s.cities[i], nil
}

// Len returns the number of entries.
func (s *RecentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cities)
}

// Clear drops every entry.
func (s *RecentStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cities = s.cities[:0]
}

func (s *RecentStore) indexLocked(name string) int {
	for i, c := range s.cities {
		if c.Name == name {
			return i
		}
	}
	return -1
}

var _ weather.RecentStore = (*RecentStore)(nil)
