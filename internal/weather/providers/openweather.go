package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// DefaultOpenWeatherBaseURL is the public OpenWeatherMap API host.
const DefaultOpenWeatherBaseURL = "https://api.openweathermap.org"

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewOpenWeatherProvider builds a provider for the current-weather endpoint
// under baseURL. An empty baseURL selects the public API.
func NewOpenWeatherProvider(client *http.Client, baseURL, apiKey string) *OpenWeatherProvider {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultOpenWeatherBaseURL
	}

	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: base + "/data/2.5/weather",
		client:  client,
		circuit: newCircuitBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, city string) (weather.ProviderReading, error) {
	if p.apiKey == "" {
		return weather.ProviderReading{}, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", city)
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return weather.ProviderReading{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Dt    int64  `json:"dt"`
		Name  string `json:"name"`
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ProviderReading{}, fmt.Errorf("decode openweather response: %w", err)
	}

	var ts time.Time
	if payload.Dt > 0 {
		ts = time.Unix(payload.Dt, 0).UTC()
	}

	r := weather.ProviderReading{
		ProviderName: p.name,
		Timestamp:    ts,
		Name:         payload.Name,
		TemperatureC: payload.Main.Temp,
		HumidityPct:  payload.Main.Humidity,
		WindSpeedMS:  payload.Wind.Speed,
		Lat:          payload.Coord.Lat,
		Lon:          payload.Coord.Lon,
	}
	// Only the first weather entry is displayed.
	if len(payload.Weather) > 0 {
		r.Main = payload.Weather[0].Main
		r.Description = payload.Weather[0].Description
	}
	return r, nil
}

var _ weather.Provider = (*OpenWeatherProvider)(nil)
