package repositories

import (
	"context"
	"errors"
	"fmt"

	"booking-system/airline/internal/constants"
	gormModels "booking-system/airline/internal/models/gorm"

	"gorm.io/gorm"
)

// AircraftRepository handles aircraft table operations using GORM
type AircraftRepository struct {
	db *gorm.DB
}

func NewAircraftRepository(db *gorm.DB) *AircraftRepository {
	return &AircraftRepository{db: db}
}

// WithTx returns a copy bound to tx.
func (r *AircraftRepository) WithTx(tx *gorm.DB) *AircraftRepository {
	return &AircraftRepository{db: tx}
}

func (r *AircraftRepository) Create(ctx context.Context, aircraft *gormModels.Aircraft) error {
	if err := r.db.WithContext(ctx).Create(aircraft).Error; err != nil {
		return fmt.Errorf("failed to create aircraft: %w", err)
	}
	return nil
}

// GetActive returns nil, nil for missing or soft-deleted aircraft.
func (r *AircraftRepository) GetActive(ctx context.Context, id int64) (*gormModels.Aircraft, error) {
	var aircraft gormModels.Aircraft

	err := r.db.WithContext(ctx).
		Where("id = ? AND state = ?", id, constants.StateActive).
		First(&aircraft).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch aircraft: %w", err)
	}

	return &aircraft, nil
}

// Get ignores the lifecycle state. Only undelete paths use it.
func (r *AircraftRepository) Get(ctx context.Context, id int64) (*gormModels.Aircraft, error) {
	var aircraft gormModels.Aircraft

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&aircraft).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch aircraft: %w", err)
	}

	return &aircraft, nil
}

func (r *AircraftRepository) ListActive(ctx context.Context) ([]gormModels.Aircraft, error) {
	var aircraft []gormModels.Aircraft

	err := r.db.WithContext(ctx).
		Where("state = ?", constants.StateActive).
		Order("id").
		Find(&aircraft).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list aircraft: %w", err)
	}

	return aircraft, nil
}

// Update rewrites name and seat count of an active aircraft and reports
// whether a row matched.
func (r *AircraftRepository) Update(ctx context.Context, id int64, name string, totalSeats int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&gormModels.Aircraft{}).
		Where("id = ? AND state = ?", id, constants.StateActive).
		Updates(map[string]interface{}{
			"name":        name,
			"total_seats": totalSeats,
		})

	if res.Error != nil {
		return false, fmt.Errorf("failed to update aircraft: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// SetState moves an aircraft from one lifecycle state to another. The
// transition only applies when the row is currently in from.
func (r *AircraftRepository) SetState(ctx context.Context, id int64, from, to constants.LifecycleState) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&gormModels.Aircraft{}).
		Where("id = ? AND state = ?", id, from).
		Update("state", to)

	if res.Error != nil {
		return false, fmt.Errorf("failed to change aircraft state: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
