package widget

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/i474232898/weather-lookup/internal/locale"
	"github.com/i474232898/weather-lookup/internal/mapview"
	"github.com/i474232898/weather-lookup/internal/weather"
)

const idleBackground = "lightgrey"

var (
	// ErrConfirmationRequired is returned when the recent list is cleared
	// without the user's confirmation.
	ErrConfirmationRequired = errors.New("clearing recent cities requires confirmation")

	// ErrUnknownRecentCity is returned when reselecting a city that is not in
	// the recent list.
	ErrUnknownRecentCity = errors.New("city is not in the recent list")
)

// Fetcher looks up the current weather of a city. Lookup records the city
// as recent; Current does not.
type Fetcher interface {
	Lookup(ctx context.Context, city string) (weather.Snapshot, error)
	Current(ctx context.Context, city string) (weather.Snapshot, error)
}

// Suggester derives autocomplete suggestions from the typed text.
type Suggester interface {
	Suggest(input string) []string
}

// RecentList is the read and clear side of the recency list. Additions go
// through the Fetcher.
type RecentList interface {
	List() []weather.RecentCity
	Get(name string) (weather.RecentCity, error)
	Clear()
}

// Options tune a Widget.
type Options struct {
	MapZoom int
	Logger  *slog.Logger
}

// Widget is the single weather lookup component. All state is in memory and
// guarded by mu, which is never held during a lookup.
type Widget struct {
	fetcher   Fetcher
	suggester Suggester
	recent    RecentList
	locale    *locale.Locale
	mapZoom   int
	logger    *slog.Logger

	mu          sync.Mutex
	query       string
	suggestions []string
	snapshot    *weather.Snapshot
	errMsg      string
	loading     bool
	mapMode     bool
}

// New builds an idle widget.
func New(fetcher Fetcher, suggester Suggester, recent RecentList, loc *locale.Locale, opts Options) *Widget {
	if loc == nil {
		loc = locale.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Widget{
		fetcher:     fetcher,
		suggester:   suggester,
		recent:      recent,
		locale:      loc,
		mapZoom:     opts.MapZoom,
		logger:      logger,
		suggestions: []string{},
	}
}

// Input records the typed text and recomputes the suggestions.
func (w *Widget) Input(text string) State {
	suggestions := w.suggester.Suggest(text)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.query = text
	w.suggestions = suggestions
	return w.stateLocked()
}

// Search looks up city and applies the outcome. Overlapping searches are not
// serialized; each completion applies its own result.
func (w *Widget) Search(ctx context.Context, city string) State {
	return w.run(ctx, city, true)
}

// SelectSuggestion searches a clicked suggestion.
func (w *Widget) SelectSuggestion(ctx context.Context, city string) State {
	w.mu.Lock()
	w.query = city
	w.suggestions = []string{}
	w.mu.Unlock()

	return w.run(ctx, city, true)
}

// Reselect searches a city from the recent list again.
func (w *Widget) Reselect(ctx context.Context, name string) (State, error) {
	if _, err := w.recent.Get(name); err != nil {
		return w.State(), ErrUnknownRecentCity
	}

	w.mu.Lock()
	w.query = name
	w.mu.Unlock()

	return w.run(ctx, name, true), nil
}

// Refresh repeats the lookup of the displayed city without touching the
// typed text or the recent list. It reports false when nothing is displayed.
func (w *Widget) Refresh(ctx context.Context) (State, bool) {
	w.mu.Lock()
	if w.snapshot == nil {
		st := w.stateLocked()
		w.mu.Unlock()
		return st, false
	}
	name := w.snapshot.Name
	w.mu.Unlock()

	return w.apply(ctx, name, w.fetcher.Current, false), true
}

func (w *Widget) run(ctx context.Context, city string, clearQuery bool) State {
	return w.apply(ctx, city, w.fetcher.Lookup, clearQuery)
}

func (w *Widget) apply(
	ctx context.Context,
	city string,
	fetch func(context.Context, string) (weather.Snapshot, error),
	clearQuery bool,
) State {
	w.mu.Lock()
	w.loading = true
	w.mu.Unlock()

	snap, err := fetch(ctx, city)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.logger.Info("showing lookup error", "city", city, "error", err)
		w.snapshot = nil
		w.errMsg = w.locale.Messages.LookupFailed
	} else {
		w.snapshot = &snap
		w.errMsg = ""
	}
	w.loading = false
	if clearQuery {
		w.query = ""
	}
	return w.stateLocked()
}

// ClearRecent empties the recent list once the user has confirmed.
func (w *Widget) ClearRecent(confirmed bool) (State, error) {
	if !confirmed {
		return w.State(), ErrConfirmationRequired
	}
	w.recent.Clear()
	w.logger.Info("recent cities cleared")
	return w.State(), nil
}

// ShowMap switches to map mode.
func (w *Widget) ShowMap() State {
	return w.setMapMode(true)
}

// HideMap leaves map mode.
func (w *Widget) HideMap() State {
	return w.setMapMode(false)
}

func (w *Widget) setMapMode(enabled bool) State {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.mapMode = enabled
	return w.stateLocked()
}

// Map lays out the recent cities for map mode.
func (w *Widget) Map() mapview.View {
	return mapview.Build(w.recent.List(), w.mapZoom)
}

// ConfirmPrompt is the question shown before clearing the recent list.
func (w *Widget) ConfirmPrompt() string {
	return w.locale.Messages.ClearConfirm
}

// State returns a copy of the current view state.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stateLocked()
}

func (w *Widget) stateLocked() State {
	recent := w.recent.List()

	st := State{
		Query:       w.query,
		Placeholder: w.locale.Messages.InputPlaceholder,
		Suggestions: append([]string{}, w.suggestions...),
		Loading:     w.loading,
		Error:       w.errMsg,
		Recent:      recent,
		MapMode:     w.mapMode,
		CanClear:    len(recent) > 0,
		Background:  idleBackground,
	}

	if w.snapshot != nil {
		st.Weather = w.viewOf(*w.snapshot)
		st.CanShowMap = true
		if !w.mapMode {
			st.Background = weather.Background(w.snapshot.Main)
		}
	}
	if !st.Loading && st.Error == "" && st.Weather == nil {
		st.Prompt = w.locale.Messages.IdlePrompt
	}
	return st
}

func (w *Widget) viewOf(s weather.Snapshot) *WeatherView {
	return &WeatherView{
		Snapshot:           s,
		DisplayTemperature: int(math.Round(s.Temperature)),
		DisplayCondition:   w.locale.TranslateCondition(s.Description),
		Icon:               weather.Icon(s.Main),
	}
}
