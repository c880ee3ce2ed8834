package scheduler

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-lookup/internal/widget"
)

// Refresher repeats the lookup of the displayed city.
type Refresher interface {
	Refresh(ctx context.Context) (widget.State, bool)
}

// Scheduler periodically refreshes the widget's displayed weather.
type Scheduler struct {
	scheduler *gocron.Scheduler
	target    Refresher
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler. timeout bounds each refresh run.
func New(target Refresher, interval, timeout time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		target:    target,
		interval:  interval,
		timeout:   timeout,
		logger:    logger,
	}
}

// Start schedules the refresh job and starts the underlying scheduler. A
// non-positive interval disables refreshing.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Info("scheduler: refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().SingletonMode().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("scheduler: refresh enabled", "interval", s.interval.String())
	return nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	st, ok := s.target.Refresh(ctx)
	switch {
	case !ok:
		s.logger.Debug("scheduler: nothing displayed, skipping refresh")
	case st.Error != "":
		s.logger.Warn("scheduler: refresh failed")
	default:
		s.logger.Info("scheduler: refreshed", "city", st.Weather.Name)
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
