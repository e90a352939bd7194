package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"booking-system/airline/internal/config"

	"gorm.io/gorm"
)

var ErrLockTimeout = errors.New("timed out waiting for lock")

// Locker hands out named serialization locks that live as long as the
// enclosing transaction. release must be called after the transaction has
// committed or rolled back.
type Locker interface {
	Acquire(ctx context.Context, tx *gorm.DB, key string) (release func(), err error)
}

func NewLocker(driver string, timeout time.Duration) Locker {
	if driver == config.DriverSQLite {
		return NewKeyedMutexLocker(timeout)
	}
	return AdvisoryLocker{}
}

func AircraftLockKey(aircraftID int64) string {
	return fmt.Sprintf("aircraft:%d", aircraftID)
}

func FlightNumberLockKey(flightNumber string) string {
	return "flight_number:" + flightNumber
}

func noopRelease() {}

// AdvisoryLocker uses Postgres transaction-scoped advisory locks. Commit or
// rollback releases them, so the returned release is a no-op. Waiting is
// bounded by the transaction's lock_timeout.
type AdvisoryLocker struct{}

func (AdvisoryLocker) Acquire(ctx context.Context, tx *gorm.DB, key string) (func(), error) {
	if err := tx.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", key).Error; err != nil {
		return noopRelease, err
	}
	return noopRelease, nil
}

// KeyedMutexLocker is the in-process equivalent of AdvisoryLocker: one
// single-slot semaphore per key, dropped once nobody holds or waits on it.
type KeyedMutexLocker struct {
	timeout time.Duration

	mu    sync.Mutex
	slots map[string]*lockSlot
}

type lockSlot struct {
	ch   chan struct{}
	refs int
}

func NewKeyedMutexLocker(timeout time.Duration) *KeyedMutexLocker {
	return &KeyedMutexLocker{
		timeout: timeout,
		slots:   make(map[string]*lockSlot),
	}
}

func (l *KeyedMutexLocker) Acquire(ctx context.Context, _ *gorm.DB, key string) (func(), error) {
	slot := l.checkout(key)

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	select {
	case slot.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-slot.ch
				l.checkin(key, slot)
			})
		}, nil
	case <-ctx.Done():
		l.checkin(key, slot)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return noopRelease, fmt.Errorf("%w: %s", ErrLockTimeout, key)
		}
		return noopRelease, ctx.Err()
	}
}

func (l *KeyedMutexLocker) checkout(key string) *lockSlot {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot, ok := l.slots[key]
	if !ok {
		slot = &lockSlot{ch: make(chan struct{}, 1)}
		l.slots[key] = slot
	}
	slot.refs++
	return slot
}

func (l *KeyedMutexLocker) checkin(key string, slot *lockSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, key)
	}
}

func (l *KeyedMutexLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
