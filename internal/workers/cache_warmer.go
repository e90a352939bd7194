package workers

import (
	"context"
	"time"

	"booking-system/airline/internal/constants"
	"booking-system/airline/internal/logging"
	gormModels "booking-system/airline/internal/models/gorm"
)

// FlightLister is the read-through listing the warmer drives.
type FlightLister interface {
	ListByDate(ctx context.Context, date time.Time) ([]gormModels.Flight, error)
}

// FlightCacheWarmer keeps the per-day flight listings for the next few
// departure days in the cache, so the first reader after an invalidation
// does not pay for the query.
type FlightCacheWarmer struct {
	flights  FlightLister
	interval time.Duration
	days     int
	now      func() time.Time
}

func NewFlightCacheWarmer(flights FlightLister, interval time.Duration, days int) *FlightCacheWarmer {
	if days < 1 {
		days = 1
	}
	return &FlightCacheWarmer{
		flights:  flights,
		interval: interval,
		days:     days,
		now:      time.Now,
	}
}

// Start warms once, then on every tick until ctx ends.
func (w *FlightCacheWarmer) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.warm(ctx)

	for {
		select {
		case <-ticker.C:
			w.warm(ctx)
		case <-ctx.Done():
			logging.Info("Flight cache warmer shutting down")
			return nil
		}
	}
}

func (w *FlightCacheWarmer) warm(ctx context.Context) {
	today := w.now().UTC().Truncate(24 * time.Hour)
	for i := 0; i < w.days; i++ {
		if ctx.Err() != nil {
			return
		}
		day := today.AddDate(0, 0, i)
		if _, err := w.flights.ListByDate(ctx, day); err != nil {
			logging.Warn("Flight cache warm failed", "date", day.Format(constants.DateLayout), "error", err)
		}
	}
}
