package gorm

type Seat struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement" json:"seat_id"`
	FlightID   int64  `gorm:"column:flight_id;not null;uniqueIndex:idx_seats_flight_number,priority:1" json:"flight_id"`
	SeatNumber string `gorm:"column:seat_number;size:10;not null;uniqueIndex:idx_seats_flight_number,priority:2" json:"seat_number"`
	Available  bool   `gorm:"column:available;not null" json:"available"`

	Flight *Flight `gorm:"foreignKey:FlightID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// TableName specifies the table name for GORM
func (Seat) TableName() string {
	return "seats"
}
