package mapview

import (
	"math"

	"github.com/i474232898/weather-lookup/internal/weather"
)

const (
	// DefaultZoom is the initial zoom level of the map.
	DefaultZoom = 7

	// Projection is the map's display projection (spherical Web Mercator).
	Projection = "EPSG:3857"

	// TileURL is the OpenStreetMap raster tile template.
	TileURL = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"

	markerIconURL   = "https://openlayers.org/en/latest/examples/data/icon.png"
	markerIconScale = 0.4

	earthRadiusMeters = 6378137.0
	earthRadiusKm     = 6371.0
	maxMercatorLat    = 85.05112878
)

// Point is a projected position in meters.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Icon describes how markers are drawn.
type Icon struct {
	Src   string  `json:"src"`
	Scale float64 `json:"scale"`
}

// Marker is one recent city drawn on the map.
type Marker struct {
	Name       string              `json:"name"`
	Position   weather.Coordinates `json:"position"`
	Projected  Point               `json:"projected"`
	DistanceKm float64             `json:"distanceKm"` // from the map centre
}

// View is everything needed to render the map mode of the widget.
type View struct {
	Center          weather.Coordinates `json:"center"`
	ProjectedCenter Point               `json:"projectedCenter"`
	Zoom            int                 `json:"zoom"`
	Projection      string              `json:"projection"`
	TileURL         string              `json:"tileUrl"`
	Icon            Icon                `json:"icon"`
	Markers         []Marker            `json:"markers"`
}

// Build lays out the map for the recency list. The view is centred on the
// most recently added city, or on (0,0) when the list is empty.
func Build(recent []weather.RecentCity, zoom int) View {
	if zoom <= 0 {
		zoom = DefaultZoom
	}

	var center weather.Coordinates
	if len(recent) > 0 {
		center = recent[len(recent)-1].Coordinates()
	}

	markers := make([]Marker, 0, len(recent))
	for _, c := range recent {
		pos := c.Coordinates()
		markers = append(markers, Marker{
			Name:       c.Name,
			Position:   pos,
			Projected:  FromLonLat(pos.Lon, pos.Lat),
			DistanceKm: math.Round(Haversine(center.Lat, center.Lon, pos.Lat, pos.Lon)*10) / 10,
		})
	}

	return View{
		Center:          center,
		ProjectedCenter: FromLonLat(center.Lon, center.Lat),
		Zoom:            zoom,
		Projection:      Projection,
		TileURL:         TileURL,
		Icon:            Icon{Src: markerIconURL, Scale: markerIconScale},
		Markers:         markers,
	}
}

// FromLonLat projects WGS84 degrees to spherical Web Mercator meters.
// Latitudes are clamped to the projection's valid range.
func FromLonLat(lon, lat float64) Point {
	lat = math.Max(-maxMercatorLat, math.Min(maxMercatorLat, lat))
	x := earthRadiusMeters * lon * math.Pi / 180
	y := earthRadiusMeters * math.Log(math.Tan(math.Pi/4+lat*math.Pi/360))
	return Point{X: x, Y: y}
}

// Haversine calculates distance between two points in kilometers
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
