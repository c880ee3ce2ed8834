package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/i474232898/weather-lookup/internal/common"
)

// DefaultMinChars is the shortest trimmed input that produces suggestions.
const DefaultMinChars = 3

//go:embed cities.yaml
var defaultCities []byte

// Catalog is the static list of known city names used for autocomplete.
type Catalog struct {
	cities   []string
	folded   []string
	minChars int
}

type file struct {
	Cities []string `yaml:"cities"`
}

// New builds a catalog over cities, keeping their order. A minChars <= 0
// falls back to DefaultMinChars.
func New(cities []string, minChars int) *Catalog {
	if minChars <= 0 {
		minChars = DefaultMinChars
	}
	c := &Catalog{
		cities:   make([]string, 0, len(cities)),
		folded:   make([]string, 0, len(cities)),
		minChars: minChars,
	}
	for _, name := range cities {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		c.cities = append(c.cities, name)
		c.folded = append(c.folded, common.Fold(name))
	}
	return c
}

// Parse reads a YAML document with a top-level "cities" list.
func Parse(data []byte, minChars int) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse city catalog: %w", err)
	}
	if len(f.Cities) == 0 {
		return nil, errors.New("city catalog is empty")
	}
	return New(f.Cities, minChars), nil
}

// Default returns the embedded catalog.
func Default(minChars int) (*Catalog, error) {
	return Parse(defaultCities, minChars)
}

// Suggest returns the cities containing input, case- and accent-insensitively,
// in catalog order. Inputs shorter than the minimum once trimmed yield nothing.
func (c *Catalog) Suggest(input string) []string {
	if utf8.RuneCountInString(strings.TrimSpace(input)) < c.minChars {
		return []string{}
	}
	needle := common.Fold(input)
	out := make([]string, 0)
	for i, f := range c.folded {
		if strings.Contains(f, needle) {
			out = append(out, c.cities[i])
		}
	}
	return out
}

// Cities returns a copy of the catalog in source order.
func (c *Catalog) Cities() []string {
	out := make([]string, len(c.cities))
	copy(out, c.cities)
	return out
}

// Len returns the number of cities.
func (c *Catalog) Len() int {
	return len(c.cities)
}
