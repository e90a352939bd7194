package gorm

import "time"

type Booking struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"booking_id"`
	UserID      int64     `gorm:"column:user_id;not null;index" json:"user_id"`
	FlightID    int64     `gorm:"column:flight_id;not null;index" json:"flight_id"`
	SeatID      int64     `gorm:"column:seat_id;not null;uniqueIndex" json:"seat_id"`
	BookingTime time.Time `gorm:"column:booking_time;not null" json:"booking_time"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Flight *Flight `gorm:"foreignKey:FlightID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Seat   *Seat   `gorm:"foreignKey:SeatID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// TableName specifies the table name for GORM
func (Booking) TableName() string {
	return "bookings"
}
