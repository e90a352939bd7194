package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "booking-system/airline/internal/models/gorm"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) WithTx(tx *gorm.DB) *BookingRepository {
	return &BookingRepository{db: tx}
}

// Create inserts the booking and returns the number of rows written.
func (r *BookingRepository) Create(ctx context.Context, booking *gormModels.Booking) (int64, error) {
	res := r.db.WithContext(ctx).Create(booking)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to create booking: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*gormModels.Booking, error) {
	var booking gormModels.Booking

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return &booking, nil
}

func (r *BookingRepository) CountForSeat(ctx context.Context, seatID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&gormModels.Booking{}).Where("seat_id = ?", seatID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}
