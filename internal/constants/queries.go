package constants

// Read-model queries run through sqlx. Placeholders are written as '?' and
// rebound for the active driver.
const (
	ListFlightsDepartingBetween = `
	SELECT id, flight_number, departure_airport, destination_airport,
	       departure_time, arrival_time, aircraft_id, price, state,
	       created_at, updated_at
	FROM flights
	WHERE state = ? AND departure_time >= ? AND departure_time < ?
	ORDER BY departure_time, id
	`

	// A flight matches a calendar day when its [departure, arrival] span
	// touches any instant of that day.
	ListSeatsForFlightOnDate = `
	SELECT s.id, s.flight_id, s.seat_number, s.available,
	       f.flight_number, f.departure_airport, f.destination_airport,
	       f.departure_time, f.arrival_time
	FROM seats s
	JOIN flights f ON f.id = s.flight_id
	WHERE s.flight_id = ?
	  AND f.state = ?
	  AND f.departure_time < ?
	  AND f.arrival_time >= ?
	ORDER BY s.id
	`

	CountSeatsForFlight = `
	SELECT COUNT(*) FROM seats WHERE flight_id = ?
	`
)
