package constants

const (
	MsgServerError            = "Server Error"
	MsgValidationFailed       = "Validation failed"
	MsgInvalidJSON            = "Invalid JSON body"
	MsgInvalidID              = "Invalid id"
	MsgInvalidDate            = "Invalid date, expected YYYY-MM-DD"
	MsgMissingToken           = "Access denied. No token provided!"
	MsgInvalidToken           = "Access denied. Invalid Token"
	MsgAdminOnly              = "Access Forbidden: Admin Only!"
	MsgInvalidCredentials     = "Invalid credentials"
	MsgUserAlreadyExists      = "User already exists"
	MsgAircraftNotFound       = "Aircraft not found"
	MsgFlightNotFound         = "Flight not found"
	MsgSeatNotFound           = "Seat not found"
	MsgBookingNotFound        = "Booking not found"
	MsgSeatAlreadyBooked      = "Seat already booked"
	MsgDuplicateFlight        = "duplicate flight number in overlapping window"
	MsgLockTimeout            = "Resource is busy, retry the request"
	MsgConflict               = "Request conflicts with current state"
	MsgArrivalBeforeDeparture = "arrival_time must be after departure_time"
	MsgTooManyRequests        = "Too many requests"
)
