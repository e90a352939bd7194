package entities

import "time"

// SeatListing is a seat row joined with the schedule of its flight.
type SeatListing struct {
	SeatID             int64     `db:"id" json:"seat_id"`
	FlightID           int64     `db:"flight_id" json:"flight_id"`
	SeatNumber         string    `db:"seat_number" json:"seat_number"`
	Available          bool      `db:"available" json:"available"`
	FlightNumber       string    `db:"flight_number" json:"flight_number"`
	DepartureAirport   string    `db:"departure_airport" json:"departure_airport"`
	DestinationAirport string    `db:"destination_airport" json:"destination_airport"`
	DepartureTime      time.Time `db:"departure_time" json:"departure_time"`
	ArrivalTime        time.Time `db:"arrival_time" json:"arrival_time"`
}
