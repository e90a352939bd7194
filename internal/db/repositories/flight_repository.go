package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"booking-system/airline/internal/constants"
	gormModels "booking-system/airline/internal/models/gorm"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FlightRepository writes through GORM and serves date listings through sqlx.
type FlightRepository struct {
	db   *gorm.DB
	read *sqlx.DB
}

func NewFlightRepository(db *gorm.DB, read *sqlx.DB) *FlightRepository {
	return &FlightRepository{db: db, read: read}
}

// WithTx returns a copy whose GORM calls run on tx.
func (r *FlightRepository) WithTx(tx *gorm.DB) *FlightRepository {
	return &FlightRepository{db: tx, read: r.read}
}

func (r *FlightRepository) Create(ctx context.Context, flight *gormModels.Flight) error {
	if err := r.db.WithContext(ctx).Create(flight).Error; err != nil {
		return fmt.Errorf("failed to create flight: %w", err)
	}
	return nil
}

// GetActive returns nil, nil for missing or soft-deleted flights.
func (r *FlightRepository) GetActive(ctx context.Context, id int64) (*gormModels.Flight, error) {
	return r.findOne(ctx, "", "id = ? AND state = ?", id, constants.StateActive)
}

// GetActiveForShare is GetActive holding a shared row lock until the
// transaction ends. Bookings use it so a concurrent delete waits for them.
func (r *FlightRepository) GetActiveForShare(ctx context.Context, id int64) (*gormModels.Flight, error) {
	return r.findOne(ctx, clause.LockingStrengthShare, "id = ? AND state = ?", id, constants.StateActive)
}

// GetActiveForUpdate is GetActive holding an exclusive row lock.
func (r *FlightRepository) GetActiveForUpdate(ctx context.Context, id int64) (*gormModels.Flight, error) {
	return r.findOne(ctx, clause.LockingStrengthUpdate, "id = ? AND state = ?", id, constants.StateActive)
}

// Get ignores the lifecycle state.
func (r *FlightRepository) Get(ctx context.Context, id int64) (*gormModels.Flight, error) {
	return r.findOne(ctx, "", "id = ?", id)
}

// GetForUpdate is Get holding an exclusive row lock.
func (r *FlightRepository) GetForUpdate(ctx context.Context, id int64) (*gormModels.Flight, error) {
	return r.findOne(ctx, clause.LockingStrengthUpdate, "id = ?", id)
}

// findOne locks the row with the given strength; "" reads without a lock.
// SQLite ignores row locks.
func (r *FlightRepository) findOne(ctx context.Context, lock string, query string, args ...interface{}) (*gormModels.Flight, error) {
	var flight gormModels.Flight

	q := r.db.WithContext(ctx)
	if lock != "" {
		q = q.Clauses(clause.Locking{Strength: lock})
	}
	err := q.Where(query, args...).First(&flight).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch flight: %w", err)
	}

	return &flight, nil
}

// FindOverlapping returns active flights with the same number whose
// [departure, arrival) interval intersects the given one. excludeID > 0
// leaves that flight out, for updates and restores.
func (r *FlightRepository) FindOverlapping(ctx context.Context, flightNumber string, departure, arrival time.Time, excludeID int64) ([]gormModels.Flight, error) {
	var flights []gormModels.Flight

	q := r.db.WithContext(ctx).
		Where("flight_number = ? AND state = ?", flightNumber, constants.StateActive).
		Where("departure_time < ? AND arrival_time > ?", arrival, departure)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	if err := q.Find(&flights).Error; err != nil {
		return nil, fmt.Errorf("failed to check flight overlap: %w", err)
	}
	return flights, nil
}

// Update rewrites the schedule fields of an active flight.
func (r *FlightRepository) Update(ctx context.Context, flight *gormModels.Flight) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&gormModels.Flight{}).
		Where("id = ? AND state = ?", flight.ID, constants.StateActive).
		Updates(map[string]interface{}{
			"flight_number":       flight.FlightNumber,
			"departure_airport":   flight.DepartureAirport,
			"destination_airport": flight.DestinationAirport,
			"departure_time":      flight.DepartureTime,
			"arrival_time":        flight.ArrivalTime,
			"aircraft_id":         flight.AircraftID,
			"price":               flight.Price,
		})

	if res.Error != nil {
		return false, fmt.Errorf("failed to update flight: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// SetState moves a flight between lifecycle states when it is currently in from.
func (r *FlightRepository) SetState(ctx context.Context, id int64, from, to constants.LifecycleState) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&gormModels.Flight{}).
		Where("id = ? AND state = ?", id, from).
		Update("state", to)

	if res.Error != nil {
		return false, fmt.Errorf("failed to change flight state: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ListByDate returns the active flights departing on the UTC calendar day of date.
func (r *FlightRepository) ListByDate(ctx context.Context, date time.Time) ([]gormModels.Flight, error) {
	dayStart, dayEnd := DayBounds(date)

	flights := []gormModels.Flight{}
	query := r.read.Rebind(constants.ListFlightsDepartingBetween)
	if err := r.read.SelectContext(ctx, &flights, query, constants.StateActive, dayStart, dayEnd); err != nil {
		return nil, fmt.Errorf("failed to list flights by date: %w", err)
	}
	return flights, nil
}

// DayBounds returns [00:00, next 00:00) of date's UTC calendar day.
func DayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
