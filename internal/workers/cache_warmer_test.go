package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	gormModels "booking-system/airline/internal/models/gorm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLister struct {
	mu    sync.Mutex
	dates []time.Time
	err   error
}

func (r *recordingLister) ListByDate(_ context.Context, date time.Time) ([]gormModels.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dates = append(r.dates, date)
	return nil, r.err
}

func (r *recordingLister) calls() []time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Time(nil), r.dates...)
}

func TestWarmCoversUpcomingDays(t *testing.T) {
	lister := &recordingLister{}
	w := NewFlightCacheWarmer(lister, time.Hour, 3)
	w.now = func() time.Time { return time.Date(2025, 3, 14, 23, 30, 0, 0, time.FixedZone("X", -2*3600)) }

	w.warm(context.Background())

	// 23:30 at UTC-2 is already the 15th in UTC.
	assert.Equal(t, []time.Time{
		time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC),
	}, lister.calls())
}

func TestWarmContinuesPastErrors(t *testing.T) {
	lister := &recordingLister{err: errors.New("db down")}
	w := NewFlightCacheWarmer(lister, time.Hour, 2)

	w.warm(context.Background())
	assert.Len(t, lister.calls(), 2)
}

func TestStartStopsWithContext(t *testing.T) {
	lister := &recordingLister{}
	w := NewFlightCacheWarmer(lister, 10*time.Millisecond, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	require.Eventually(t, func() bool { return len(lister.calls()) >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("warmer did not stop")
	}
}
