package dtos

import "time"

type RegisterUserReq struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AircraftReq struct {
	Name       string `json:"name" validate:"required,max=100"`
	TotalSeats int    `json:"total_seats" validate:"required,min=1,max=1000"`
}

// FlightReq is the body of both flight creation and flight update.
type FlightReq struct {
	FlightNumber       string    `json:"flight_number" validate:"required,alphanum,max=10"`
	DepartureAirport   string    `json:"departure_airport" validate:"required,alpha,min=3,max=4"`
	DestinationAirport string    `json:"destination_airport" validate:"required,alpha,min=3,max=4,nefield=DepartureAirport"`
	DepartureTime      time.Time `json:"departure_time" validate:"required"`
	ArrivalTime        time.Time `json:"arrival_time" validate:"required,gtfield=DepartureTime"`
	AircraftID         int64     `json:"aircraft_id" validate:"required,gt=0"`
	Price              *float64  `json:"price" validate:"required,gte=0,lte=99999999.99"`
}

type BookingReq struct {
	FlightID int64 `json:"flight_id" validate:"required,gt=0"`
	SeatID   int64 `json:"seat_id" validate:"required,gt=0"`
}

type SeatUpdateReq struct {
	SeatNumber string `json:"seat_number" validate:"required,alphanum,max=10"`
}
