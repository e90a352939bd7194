package db

import (
	"fmt"

	gormModels "booking-system/airline/internal/models/gorm"

	"gorm.io/gorm"
)

// Migrate creates or updates the relational schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&gormModels.User{},
		&gormModels.Aircraft{},
		&gormModels.Flight{},
		&gormModels.Seat{},
		&gormModels.Booking{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
