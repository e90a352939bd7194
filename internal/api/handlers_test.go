package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"booking-system/airline/internal/auth"
	"booking-system/airline/internal/common"
	"booking-system/airline/internal/constants"
	"booking-system/airline/internal/models/dtos"
	"booking-system/airline/internal/models/entities"
	gormModels "booking-system/airline/internal/models/gorm"
	"booking-system/airline/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUsers struct{ mock.Mock }

func (m *mockUsers) Register(ctx context.Context, req dtos.RegisterUserReq) (*gormModels.User, string, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*gormModels.User)
	return user, args.String(1), args.Error(2)
}

func (m *mockUsers) Login(ctx context.Context, req dtos.LoginReq) (*gormModels.User, string, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*gormModels.User)
	return user, args.String(1), args.Error(2)
}

type mockFlights struct{ mock.Mock }

func (m *mockFlights) GetFlight(ctx context.Context, id int64) (*gormModels.Flight, error) {
	args := m.Called(ctx, id)
	flight, _ := args.Get(0).(*gormModels.Flight)
	return flight, args.Error(1)
}

func (m *mockFlights) ListByDate(ctx context.Context, date time.Time) ([]gormModels.Flight, error) {
	args := m.Called(ctx, date)
	flights, _ := args.Get(0).([]gormModels.Flight)
	return flights, args.Error(1)
}

type mockProvisioning struct{ mock.Mock }

func (m *mockProvisioning) CreateFlight(ctx context.Context, in services.FlightInput) (*gormModels.Flight, error) {
	args := m.Called(ctx, in)
	flight, _ := args.Get(0).(*gormModels.Flight)
	return flight, args.Error(1)
}

func (m *mockProvisioning) UpdateFlight(ctx context.Context, id int64, in services.FlightInput) (*gormModels.Flight, error) {
	args := m.Called(ctx, id, in)
	flight, _ := args.Get(0).(*gormModels.Flight)
	return flight, args.Error(1)
}

func (m *mockProvisioning) DeleteFlight(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProvisioning) RestoreFlight(ctx context.Context, id int64) (*gormModels.Flight, error) {
	args := m.Called(ctx, id)
	flight, _ := args.Get(0).(*gormModels.Flight)
	return flight, args.Error(1)
}

type mockSeats struct{ mock.Mock }

func (m *mockSeats) GetSeat(ctx context.Context, id int64) (*gormModels.Seat, error) {
	args := m.Called(ctx, id)
	seat, _ := args.Get(0).(*gormModels.Seat)
	return seat, args.Error(1)
}

func (m *mockSeats) ListForFlightOnDate(ctx context.Context, flightID int64, date time.Time) ([]entities.SeatListing, error) {
	args := m.Called(ctx, flightID, date)
	seats, _ := args.Get(0).([]entities.SeatListing)
	return seats, args.Error(1)
}

func (m *mockSeats) RenumberSeat(ctx context.Context, identity auth.UserClaims, id int64, seatNumber string) (*gormModels.Seat, error) {
	args := m.Called(ctx, identity, id, seatNumber)
	seat, _ := args.Get(0).(*gormModels.Seat)
	return seat, args.Error(1)
}

type mockBookings struct{ mock.Mock }

func (m *mockBookings) CreateBooking(ctx context.Context, identity auth.UserClaims, flightID, seatID int64) (*gormModels.Booking, error) {
	args := m.Called(ctx, identity, flightID, seatID)
	booking, _ := args.Get(0).(*gormModels.Booking)
	return booking, args.Error(1)
}

func (m *mockBookings) GetBooking(ctx context.Context, identity auth.UserClaims, id int64) (*gormModels.Booking, error) {
	args := m.Called(ctx, identity, id)
	booking, _ := args.Get(0).(*gormModels.Booking)
	return booking, args.Error(1)
}

func newTestHandlers(svcs *Services) *Handlers {
	return NewHandlers(&Dependencies{Services: svcs})
}

// serve routes one request through a chi router so URL params resolve.
func serve(t *testing.T, method, pattern string, h http.HandlerFunc, target, body string, claims auth.UserClaims) (*httptest.ResponseRecorder, dtos.APIResponse) {
	t.Helper()
	r := chi.NewRouter()
	r.Method(method, pattern, h)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if claims != nil {
		req = req.WithContext(auth.SetUserClaims(req.Context(), claims))
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var resp dtos.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return rr, resp
}

func TestRegisterSetsTokenHeader(t *testing.T) {
	users := &mockUsers{}
	req := dtos.RegisterUserReq{Username: "alice", Email: "alice@example.com", Password: "secret1"}
	users.On("Register", mock.Anything, req).
		Return(&gormModels.User{ID: 1, Username: "alice", Email: "alice@example.com"}, "tok", nil)

	h := newTestHandlers(&Services{Users: users})
	rr, resp := serve(t, http.MethodPost, "/register", h.Register(), "/register",
		`{"username":"alice","email":"alice@example.com","password":"secret1"}`, nil)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "tok", rr.Header().Get(constants.HeaderAuthToken))
	data := resp.Data.(map[string]any)
	assert.Equal(t, "alice", data["username"])
	assert.Equal(t, "alice@example.com", data["email"])
	assert.NotContains(t, rr.Body.String(), "secret1")
	users.AssertExpectations(t)
}

func TestRegisterRejectsInvalidBody(t *testing.T) {
	users := &mockUsers{}
	h := newTestHandlers(&Services{Users: users})

	rr, resp := serve(t, http.MethodPost, "/register", h.Register(), "/register",
		`{"username":"al","email":"nope","password":"x"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, resp.Errors, "username")
	assert.Contains(t, resp.Errors, "email")
	assert.Contains(t, resp.Errors, "password")

	rr, _ = serve(t, http.MethodPost, "/register", h.Register(), "/register", `{"username":`, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	users.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestLoginInvalidCredentials(t *testing.T) {
	users := &mockUsers{}
	users.On("Login", mock.Anything, mock.Anything).
		Return(nil, "", common.NewUnauthenticated(constants.MsgInvalidCredentials))

	h := newTestHandlers(&Services{Users: users})
	rr, resp := serve(t, http.MethodPost, "/login", h.Login(), "/login",
		`{"email":"alice@example.com","password":"wrong"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, constants.MsgInvalidCredentials, resp.Message)
	assert.Empty(t, rr.Header().Get(constants.HeaderAuthToken))
}

func TestValidateToken(t *testing.T) {
	h := newTestHandlers(&Services{})

	rr, resp := serve(t, http.MethodGet, "/validate-token", h.ValidateToken(), "/validate-token", "",
		&auth.JWTClaims{UserIDValue: 3, IsAdminValue: true})
	assert.Equal(t, http.StatusOK, rr.Code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, true, data["success"])
	assert.EqualValues(t, 3, data["user_id"])

	rr, _ = serve(t, http.MethodGet, "/validate-token", h.ValidateToken(), "/validate-token", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateFlightPassesInput(t *testing.T) {
	prov := &mockProvisioning{}
	prov.On("CreateFlight", mock.Anything, mock.MatchedBy(func(in services.FlightInput) bool {
		return in.AircraftID == 4 && in.FlightNumber == "ba100"
	})).Return(&gormModels.Flight{ID: 9, FlightNumber: "BA100"}, nil)

	h := newTestHandlers(&Services{Provisioning: prov})
	body := `{"flight_number":"ba100","departure_airport":"LHR","destination_airport":"JFK",
		"departure_time":"2025-03-14T10:00:00Z","arrival_time":"2025-03-14T18:00:00Z",
		"aircraft_id":4,"price":199.5}`
	rr, resp := serve(t, http.MethodPost, "/flights", h.CreateFlight(), "/flights", body, nil)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.EqualValues(t, 9, resp.Data.(map[string]any)["flight_id"])
	prov.AssertExpectations(t)
}

func TestCreateFlightShapeErrors(t *testing.T) {
	prov := &mockProvisioning{}
	h := newTestHandlers(&Services{Provisioning: prov})

	body := `{"flight_number":"BA100","departure_airport":"LHR","destination_airport":"LHR",
		"departure_time":"2025-03-14T18:00:00Z","arrival_time":"2025-03-14T10:00:00Z","aircraft_id":4}`
	rr, resp := serve(t, http.MethodPost, "/flights", h.CreateFlight(), "/flights", body, nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, resp.Errors, "destination_airport")
	assert.Contains(t, resp.Errors, "arrival_time")
	assert.Contains(t, resp.Errors, "price")
	prov.AssertNotCalled(t, "CreateFlight", mock.Anything, mock.Anything)
}

func TestCreateFlightPriceAboveColumnLimit(t *testing.T) {
	prov := &mockProvisioning{}
	h := newTestHandlers(&Services{Provisioning: prov})

	body := `{"flight_number":"BA100","departure_airport":"LHR","destination_airport":"JFK",
		"departure_time":"2025-03-14T10:00:00Z","arrival_time":"2025-03-14T18:00:00Z",
		"aircraft_id":4,"price":100000000}`
	rr, resp := serve(t, http.MethodPost, "/flights", h.CreateFlight(), "/flights", body, nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "must be at most 99999999.99", resp.Errors["price"])
	prov.AssertNotCalled(t, "CreateFlight", mock.Anything, mock.Anything)
}

func TestCreateFlightConflict(t *testing.T) {
	prov := &mockProvisioning{}
	prov.On("CreateFlight", mock.Anything, mock.Anything).
		Return(nil, common.NewConflict(constants.MsgDuplicateFlight))

	h := newTestHandlers(&Services{Provisioning: prov})
	body := `{"flight_number":"BA100","departure_airport":"LHR","destination_airport":"JFK",
		"departure_time":"2025-03-14T10:00:00Z","arrival_time":"2025-03-14T18:00:00Z",
		"aircraft_id":4,"price":0}`
	rr, resp := serve(t, http.MethodPost, "/flights", h.CreateFlight(), "/flights", body, nil)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, constants.MsgDuplicateFlight, resp.Message)
}

func TestListFlightsByDate(t *testing.T) {
	flights := &mockFlights{}
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	flights.On("ListByDate", mock.Anything, day).Return([]gormModels.Flight{{ID: 1}, {ID: 2}}, nil)

	h := newTestHandlers(&Services{Flights: flights})

	rr, resp := serve(t, http.MethodGet, "/by-date/{date}", h.ListFlightsByDate(), "/by-date/2025-03-14", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, resp.Data, 2)

	rr, resp = serve(t, http.MethodGet, "/by-date/{date}", h.ListFlightsByDate(), "/by-date/14-03-2025", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, constants.MsgInvalidDate, resp.Errors["date"])
	flights.AssertNumberOfCalls(t, "ListByDate", 1)
}

func TestGetFlightPathErrors(t *testing.T) {
	flights := &mockFlights{}
	flights.On("GetFlight", mock.Anything, int64(5)).Return(nil, common.NewNotFound(constants.MsgFlightNotFound))

	h := newTestHandlers(&Services{Flights: flights})

	rr, _ := serve(t, http.MethodGet, "/{id}", h.GetFlight(), "/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, _ = serve(t, http.MethodGet, "/{id}", h.GetFlight(), "/0", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, resp := serve(t, http.MethodGet, "/{id}", h.GetFlight(), "/5", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, constants.MsgFlightNotFound, resp.Message)
}

func TestDeleteAndRestoreFlight(t *testing.T) {
	prov := &mockProvisioning{}
	prov.On("DeleteFlight", mock.Anything, int64(3)).Return(nil)
	prov.On("RestoreFlight", mock.Anything, int64(3)).Return(&gormModels.Flight{ID: 3, State: constants.StateActive}, nil)

	h := newTestHandlers(&Services{Provisioning: prov})

	rr, _ := serve(t, http.MethodDelete, "/{id}", h.DeleteFlight(), "/3", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, _ = serve(t, http.MethodPut, "/undelete/{id}", h.RestoreFlight(), "/undelete/3", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	prov.AssertExpectations(t)
}

func TestCreateBookingPassesIdentity(t *testing.T) {
	bookings := &mockBookings{}
	identity := &auth.JWTClaims{UserIDValue: 11}
	bookings.On("CreateBooking", mock.Anything, identity, int64(2), int64(40)).
		Return(&gormModels.Booking{ID: 1, UserID: 11, FlightID: 2, SeatID: 40}, nil)
	bookings.On("CreateBooking", mock.Anything, identity, int64(2), int64(41)).
		Return(nil, common.NewConflict(constants.MsgSeatAlreadyBooked))

	h := newTestHandlers(&Services{Bookings: bookings})

	rr, _ := serve(t, http.MethodPost, "/", h.CreateBooking(), "/", `{"flight_id":2,"seat_id":40}`, identity)
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr, resp := serve(t, http.MethodPost, "/", h.CreateBooking(), "/", `{"flight_id":2,"seat_id":41}`, identity)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, constants.MsgSeatAlreadyBooked, resp.Message)

	rr, _ = serve(t, http.MethodPost, "/", h.CreateBooking(), "/", `{"flight_id":2}`, identity)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	bookings.AssertNumberOfCalls(t, "CreateBooking", 2)
}

func TestLockTimeoutIsRetryable(t *testing.T) {
	bookings := &mockBookings{}
	bookings.On("GetBooking", mock.Anything, mock.Anything, int64(1)).
		Return(nil, common.NewRetryableConflict(constants.MsgLockTimeout, errors.New("lock wait")))

	h := newTestHandlers(&Services{Bookings: bookings})
	rr, _ := serve(t, http.MethodGet, "/{id}", h.GetBooking(), "/1", "", &auth.JWTClaims{UserIDValue: 1})

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
}

func TestSeatHandlers(t *testing.T) {
	seats := &mockSeats{}
	admin := &auth.JWTClaims{UserIDValue: 1, IsAdminValue: true}
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	seats.On("ListForFlightOnDate", mock.Anything, int64(7), day).
		Return([]entities.SeatListing{{SeatID: 1, SeatNumber: "A1", Available: true}}, nil)
	seats.On("RenumberSeat", mock.Anything, admin, int64(1), "B2").
		Return(&gormModels.Seat{ID: 1, SeatNumber: "B2"}, nil)
	seats.On("GetSeat", mock.Anything, int64(99)).Return(nil, common.NewNotFound(constants.MsgSeatNotFound))

	h := newTestHandlers(&Services{Seats: seats})

	rr, resp := serve(t, http.MethodGet, "/{flight_id}/{date}", h.ListSeatsForFlightOnDate(), "/7/2025-03-14", "", admin)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, resp.Data, 1)

	rr, _ = serve(t, http.MethodPut, "/{id}", h.UpdateSeat(), "/1", `{"seat_number":"B2"}`, admin)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, _ = serve(t, http.MethodGet, "/{id}", h.GetSeat(), "/99", "", admin)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	seats.AssertExpectations(t)
}

func TestServerErrorsAreMasked(t *testing.T) {
	flights := &mockFlights{}
	flights.On("GetFlight", mock.Anything, int64(1)).Return(nil, errors.New("pq: connection refused"))

	h := newTestHandlers(&Services{Flights: flights})
	rr, resp := serve(t, http.MethodGet, "/{id}", h.GetFlight(), "/1", "", nil)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, constants.MsgServerError, resp.Message)
	assert.NotContains(t, rr.Body.String(), "connection refused")
}
