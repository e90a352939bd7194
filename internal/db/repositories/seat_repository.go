package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"booking-system/airline/internal/constants"
	"booking-system/airline/internal/models/entities"
	gormModels "booking-system/airline/internal/models/gorm"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// seatInsertBatchSize bounds the rows per INSERT when generating inventory.
const seatInsertBatchSize = 200

type SeatRepository struct {
	db   *gorm.DB
	read *sqlx.DB
}

func NewSeatRepository(db *gorm.DB, read *sqlx.DB) *SeatRepository {
	return &SeatRepository{db: db, read: read}
}

func (r *SeatRepository) WithTx(tx *gorm.DB) *SeatRepository {
	return &SeatRepository{db: tx, read: r.read}
}

// CreateInventory inserts seats A1..An, all available.
func (r *SeatRepository) CreateInventory(ctx context.Context, flightID int64, n int) ([]gormModels.Seat, error) {
	seats := make([]gormModels.Seat, n)
	for i := range seats {
		seats[i] = gormModels.Seat{
			FlightID:   flightID,
			SeatNumber: fmt.Sprintf("%s%d", constants.SeatNumberPrefix, i+1),
			Available:  true,
		}
	}

	res := r.db.WithContext(ctx).CreateInBatches(&seats, seatInsertBatchSize)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to create seats: %w", res.Error)
	}
	if res.RowsAffected != int64(n) {
		return nil, fmt.Errorf("seat generation inserted %d of %d rows", res.RowsAffected, n)
	}
	return seats, nil
}

// LockAvailable takes a row lock on the seat if it belongs to flightID and is
// still available. nil, nil means no such row.
func (r *SeatRepository) LockAvailable(ctx context.Context, seatID, flightID int64) (*gormModels.Seat, error) {
	var seat gormModels.Seat

	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND flight_id = ? AND available = ?", seatID, flightID, true).
		First(&seat).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock seat: %w", err)
	}
	return &seat, nil
}

// MarkHeld flips an available seat to held and returns the number of rows changed.
func (r *SeatRepository) MarkHeld(ctx context.Context, seatID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&gormModels.Seat{}).
		Where("id = ? AND available = ?", seatID, true).
		Update("available", false)

	if res.Error != nil {
		return 0, fmt.Errorf("failed to hold seat: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *SeatRepository) GetByID(ctx context.Context, id int64) (*gormModels.Seat, error) {
	var seat gormModels.Seat

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&seat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch seat: %w", err)
	}
	return &seat, nil
}

// UpdateNumber renames a seat. Availability is never touched here.
func (r *SeatRepository) UpdateNumber(ctx context.Context, id int64, seatNumber string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&gormModels.Seat{}).
		Where("id = ?", id).
		Update("seat_number", seatNumber)

	if res.Error != nil {
		return false, fmt.Errorf("failed to update seat: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ListForFlightOnDate lists the seats of an active flight whose schedule
// touches the UTC calendar day of date.
func (r *SeatRepository) ListForFlightOnDate(ctx context.Context, flightID int64, date time.Time) ([]entities.SeatListing, error) {
	dayStart, dayEnd := DayBounds(date)

	seats := []entities.SeatListing{}
	query := r.read.Rebind(constants.ListSeatsForFlightOnDate)
	if err := r.read.SelectContext(ctx, &seats, query, flightID, constants.StateActive, dayEnd, dayStart); err != nil {
		return nil, fmt.Errorf("failed to list seats: %w", err)
	}
	return seats, nil
}

func (r *SeatRepository) CountForFlight(ctx context.Context, flightID int64) (int, error) {
	var count int
	if err := r.read.GetContext(ctx, &count, r.read.Rebind(constants.CountSeatsForFlight), flightID); err != nil {
		return 0, fmt.Errorf("failed to count seats: %w", err)
	}
	return count, nil
}
