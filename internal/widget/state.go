package widget

import "github.com/i474232898/weather-lookup/internal/weather"

// State is an immutable rendering of the widget.
type State struct {
	Query       string               `json:"query"`
	Placeholder string               `json:"placeholder"`
	Suggestions []string             `json:"suggestions"`
	Loading     bool                 `json:"loading"`
	Weather     *WeatherView         `json:"weather,omitempty"`
	Error       string               `json:"error,omitempty"`
	Prompt      string               `json:"prompt,omitempty"`
	Recent      []weather.RecentCity `json:"recent"`
	MapMode     bool                 `json:"mapMode"`
	CanClear    bool                 `json:"canClear"`
	CanShowMap  bool                 `json:"canShowMap"`
	Background  string               `json:"background"`
}

// WeatherView is a snapshot with its localized display fields.
type WeatherView struct {
	weather.Snapshot
	DisplayTemperature int    `json:"displayTemperature"` // whole degrees
	DisplayCondition   string `json:"displayCondition"`
	Icon               string `json:"icon"`
}
