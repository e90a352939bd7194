package gorm

import (
	"time"

	"booking-system/airline/internal/constants"
)

type Aircraft struct {
	ID         int64                    `gorm:"column:id;primaryKey;autoIncrement" json:"aircraft_id"`
	Name       string                   `gorm:"column:name;size:100;not null" json:"name"`
	TotalSeats int                      `gorm:"column:total_seats;not null" json:"total_seats"`
	State      constants.LifecycleState `gorm:"column:state;type:varchar(16);not null;index" json:"state"`
	CreatedAt  time.Time                `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time                `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Aircraft) TableName() string {
	return "aircraft"
}
