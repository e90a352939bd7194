package gorm

import (
	"time"

	"booking-system/airline/internal/constants"
)

// Flight is shared by gorm (writes) and sqlx (read queries), hence both tag sets.
type Flight struct {
	ID                 int64                    `gorm:"column:id;primaryKey;autoIncrement" db:"id" json:"flight_id"`
	FlightNumber       string                   `gorm:"column:flight_number;size:10;not null;index:idx_flights_number_departure,priority:1" db:"flight_number" json:"flight_number"`
	DepartureAirport   string                   `gorm:"column:departure_airport;size:4;not null" db:"departure_airport" json:"departure_airport"`
	DestinationAirport string                   `gorm:"column:destination_airport;size:4;not null" db:"destination_airport" json:"destination_airport"`
	DepartureTime      time.Time                `gorm:"column:departure_time;not null;index:idx_flights_number_departure,priority:2;index" db:"departure_time" json:"departure_time"`
	ArrivalTime        time.Time                `gorm:"column:arrival_time;not null" db:"arrival_time" json:"arrival_time"`
	AircraftID         int64                    `gorm:"column:aircraft_id;not null;index" db:"aircraft_id" json:"aircraft_id"`
	Price              float64                  `gorm:"column:price;type:numeric(10,2);not null" db:"price" json:"price"`
	State              constants.LifecycleState `gorm:"column:state;type:varchar(16);not null" db:"state" json:"state"`
	CreatedAt          time.Time                `gorm:"column:created_at;autoCreateTime" db:"created_at" json:"created_at"`
	UpdatedAt          time.Time                `gorm:"column:updated_at;autoUpdateTime" db:"updated_at" json:"updated_at"`

	Aircraft *Aircraft `gorm:"foreignKey:AircraftID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" db:"-" json:"-"`
}

// TableName specifies the table name for GORM
func (Flight) TableName() string {
	return "flights"
}

// Overlaps reports half-open interval overlap: touching endpoints do not count.
func (f *Flight) Overlaps(departure, arrival time.Time) bool {
	return f.DepartureTime.Before(arrival) && f.ArrivalTime.After(departure)
}
