package constants

type (
	RequestSource string
	APIStatus     string
	CachePrefix   string
)

const (
	RequestSourceJWT RequestSource = "JWT"

	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixFlightsByDate CachePrefix = "FLIGHTS_BY_DATE_"
)

const (
	// HeaderAuthToken carries the identity token on requests and on
	// register/login responses.
	HeaderAuthToken = "auth-token"
	HeaderRequestID = "X-Request-ID"

	// SeatNumberPrefix is prepended to the 1-based seat sequence: A1..AN.
	SeatNumberPrefix = "A"

	// MaxPrice is the largest value the numeric(10,2) price column holds.
	MaxPrice = 99999999.99

	// DateLayout is the path format for /by-date/{date} and /seats/{flight_id}/{date}.
	DateLayout = "2006-01-02"
)
