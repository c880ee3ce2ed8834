package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-lookup/internal/catalog"
	"github.com/i474232898/weather-lookup/internal/locale"
	"github.com/i474232898/weather-lookup/internal/mapview"
	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/weather"
	"github.com/i474232898/weather-lookup/internal/weather/providers"
	"github.com/i474232898/weather-lookup/internal/widget"
)

var fakeCities = map[string]struct {
	lat, lon float64
	main     string
	desc     string
}{
	"Istanbul": {41.01, 28.95, "Clouds", "few clouds"},
	"Ankara":   {39.93, 32.86, "Clear", "clear sky"},
}

// newFakeOpenWeather serves the current-weather endpoint for fakeCities and
// answers 404 for anything else, like the real API.
func newFakeOpenWeather(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("q")
		c, ok := fakeCities[name]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"coord":{"lat":%v,"lon":%v},"weather":[{"main":%q,"description":%q}],"main":{"temp":20.4,"humidity":55},"wind":{"speed":2.5},"dt":1729350000,"name":%q}`,
			c.lat, c.lon, c.main, c.desc, name)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	srv := newFakeOpenWeather(t)

	provider := providers.NewOpenWeatherProvider(&http.Client{Timeout: 2 * time.Second}, srv.URL, "test-key")
	recent := store.NewRecentStore(store.DefaultRecentLimit)
	svc := weather.NewService(provider, recent, nil)
	cat, err := catalog.Default(catalog.DefaultMinChars)
	require.NoError(t, err)
	w := widget.New(svc, cat, recent, locale.Default(), widget.Options{MapZoom: mapview.DefaultZoom})

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, w, cat)
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decodeState(t *testing.T, data []byte) widget.State {
	t.Helper()
	var st widget.State
	require.NoError(t, json.Unmarshal(data, &st))
	return st
}

func TestSearchRoute(t *testing.T) {
	app := newTestApp(t)

	resp, data := do(t, app, http.MethodPost, "/api/v1/search", `{"city":"Istanbul"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st := decodeState(t, data)
	require.NotNil(t, st.Weather)
	require.Equal(t, "Istanbul", st.Weather.Name)
	require.Equal(t, 20, st.Weather.DisplayTemperature)
	require.Equal(t, "Az Bulutlu", st.Weather.DisplayCondition)
	require.Len(t, st.Recent, 1)
}

func TestSearchRouteFailureIsWidgetState(t *testing.T) {
	app := newTestApp(t)

	resp, data := do(t, app, http.MethodPost, "/api/v1/search", `{"city":"InvalidCityXYZ"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st := decodeState(t, data)
	require.Nil(t, st.Weather)
	require.Equal(t, locale.Default().Messages.LookupFailed, st.Error)
	require.Empty(t, st.Recent)
}

func TestSearchRouteValidation(t *testing.T) {
	app := newTestApp(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing city", `{}`},
		{"empty city", `{"city":""}`},
		{"too long", fmt.Sprintf(`{"city":%q}`, strings.Repeat("a", 101))},
		{"malformed", `{"city":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, data := do(t, app, http.MethodPost, "/api/v1/search", tc.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body struct {
				Error   bool   `json:"error"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(data, &body))
			require.True(t, body.Error)
			require.NotEmpty(t, body.Message)
		})
	}
}

func TestSuggestionsRoute(t *testing.T) {
	app := newTestApp(t)

	resp, data := do(t, app, http.MethodGet, "/api/v1/suggestions?q=ank", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Query       string   `json:"query"`
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(data, &body))
	require.Equal(t, []string{"Ankara", "Çankırı"}, body.Suggestions)

	_, data = do(t, app, http.MethodGet, "/api/v1/suggestions?q=an", "")
	require.NoError(t, json.Unmarshal(data, &body))
	require.NotNil(t, body.Suggestions)
	require.Empty(t, body.Suggestions)
}

func TestInputRoute(t *testing.T) {
	app := newTestApp(t)

	resp, data := do(t, app, http.MethodPut, "/api/v1/widget/input", `{"text":"izm"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st := decodeState(t, data)
	require.Equal(t, "izm", st.Query)
	require.Equal(t, []string{"İzmir"}, st.Suggestions)

	_, data = do(t, app, http.MethodGet, "/api/v1/widget", "")
	require.Equal(t, "izm", decodeState(t, data).Query)
}

func TestRecentRoutes(t *testing.T) {
	app := newTestApp(t)

	do(t, app, http.MethodPost, "/api/v1/search", `{"city":"Istanbul"}`)
	do(t, app, http.MethodPost, "/api/v1/search", `{"city":"Ankara"}`)

	resp, data := do(t, app, http.MethodPost, "/api/v1/recent/select", `{"city":"Istanbul"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Istanbul", decodeState(t, data).Weather.Name)

	resp, _ = do(t, app, http.MethodPost, "/api/v1/recent/select", `{"city":"Bursa"}`)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, data = do(t, app, http.MethodDelete, "/api/v1/recent", "")
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Contains(t, string(data), locale.Default().Messages.ClearConfirm)

	resp, _ = do(t, app, http.MethodDelete, "/api/v1/recent?confirm=maybe", "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, data = do(t, app, http.MethodGet, "/api/v1/recent", "")
	var recent struct {
		Cities   []weather.RecentCity `json:"cities"`
		CanClear bool                 `json:"canClear"`
	}
	require.NoError(t, json.Unmarshal(data, &recent))
	require.Len(t, recent.Cities, 2)
	require.True(t, recent.CanClear)

	resp, data = do(t, app, http.MethodDelete, "/api/v1/recent?confirm=true", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st := decodeState(t, data)
	require.Empty(t, st.Recent)
	require.False(t, st.CanClear)
}

func TestMapRoutes(t *testing.T) {
	app := newTestApp(t)

	do(t, app, http.MethodPost, "/api/v1/search", `{"city":"Istanbul"}`)
	do(t, app, http.MethodPost, "/api/v1/search", `{"city":"Ankara"}`)

	resp, data := do(t, app, http.MethodPut, "/api/v1/map/mode", `{"enabled":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st := decodeState(t, data)
	require.True(t, st.MapMode)
	require.Equal(t, "lightgrey", st.Background)

	resp, _ = do(t, app, http.MethodPut, "/api/v1/map/mode", `{}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, data = do(t, app, http.MethodGet, "/api/v1/map", "")
	var v mapview.View
	require.NoError(t, json.Unmarshal(data, &v))
	require.Len(t, v.Markers, 2)
	require.Equal(t, mapview.DefaultZoom, v.Zoom)
	require.InDelta(t, 39.93, v.Center.Lat, 1e-9)

	resp, data = do(t, app, http.MethodGet, "/api/v1/map/geojson", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "geo+json")
	var fc mapview.FeatureCollection
	require.NoError(t, json.Unmarshal(data, &fc))
	require.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 2)

	_, data = do(t, app, http.MethodPut, "/api/v1/map/mode", `{"enabled":false}`)
	require.False(t, decodeState(t, data).MapMode)
}

func TestErrorHandlerHidesInternalErrors(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fmt.Errorf("dial tcp 10.0.0.7:5432: connection refused")
	})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	resp, data := do(t, app, http.MethodGet, "/boom", "")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.NotContains(t, string(data), "10.0.0.7")
	require.JSONEq(t, `{"error":true,"message":"internal server error"}`, string(data))

	resp, data = do(t, app, http.MethodGet, "/teapot", "")
	require.Equal(t, http.StatusTeapot, resp.StatusCode)
	require.JSONEq(t, `{"error":true,"message":"short and stout"}`, string(data))
}
