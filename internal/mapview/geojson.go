package mapview

// FeatureCollection is a GeoJSON (RFC 7946) feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a GeoJSON feature.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Geometry is a GeoJSON point; coordinates are [lon, lat].
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// FeatureCollection renders the markers as GeoJSON points. The most recent
// city carries "latest": true.
func (v View) FeatureCollection() FeatureCollection {
	features := make([]Feature, 0, len(v.Markers))
	for i, m := range v.Markers {
		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{m.Position.Lon, m.Position.Lat},
			},
			Properties: map[string]any{
				"name":       m.Name,
				"distanceKm": m.DistanceKm,
				"latest":     i == len(v.Markers)-1,
			},
		})
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}
