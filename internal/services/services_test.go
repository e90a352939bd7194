package services

import (
	"context"
	"testing"
	"time"

	"booking-system/airline/internal/auth"
	"booking-system/airline/internal/common"
	"booking-system/airline/internal/db"
	"booking-system/airline/internal/db/dbtest"
	"booking-system/airline/internal/events"
	"booking-system/airline/internal/metrics"
	"booking-system/airline/internal/models/dtos"
	gormModels "booking-system/airline/internal/models/gorm"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testDay = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

type testEnv struct {
	store   *db.Store
	metrics *metrics.MetricsRegistry
	events  *events.Recorder
	cache   *common.CacheService
	tokens  *auth.TokenService

	provisioning *FlightProvisioningService
	flights      *FlightService
	bookings     *BookingService
	aircraft     *AircraftService
	seats        *SeatService
	users        *UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := dbtest.NewStore(t)
	reg := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	recorder := &events.Recorder{}
	cache := common.NewCacheService(time.Minute, time.Minute)
	tokens := auth.NewTokenService("test-secret", time.Hour)

	return &testEnv{
		store:        store,
		metrics:      reg,
		events:       recorder,
		cache:        cache,
		tokens:       tokens,
		provisioning: NewFlightProvisioningService(store, cache, recorder, reg),
		flights:      NewFlightService(store, cache, time.Minute, reg),
		bookings:     NewBookingService(store, recorder, reg),
		aircraft:     NewAircraftService(store),
		seats:        NewSeatService(store),
		users:        NewUserService(store, tokens, bcrypt.MinCost),
	}
}

func (e *testEnv) addAircraft(t *testing.T, seats int) *gormModels.Aircraft {
	t.Helper()
	a, err := e.aircraft.Create(context.Background(), dtos.AircraftReq{Name: "A320", TotalSeats: seats})
	require.NoError(t, err)
	return a
}

func (e *testEnv) addUser(t *testing.T, name string) *gormModels.User {
	t.Helper()
	u := &gormModels.User{Username: name, Email: name + "@example.com", PasswordHash: "x"}
	require.NoError(t, e.store.DB.Create(u).Error)
	return u
}

func (e *testEnv) addFlight(t *testing.T, aircraftID int64, number string, dep, arr time.Duration) *gormModels.Flight {
	t.Helper()
	f, err := e.provisioning.CreateFlight(context.Background(), flightInput(aircraftID, number, dep, arr))
	require.NoError(t, err)
	return f
}

func (e *testEnv) seatIDs(t *testing.T, flightID int64) []int64 {
	t.Helper()
	var ids []int64
	require.NoError(t, e.store.DB.Model(&gormModels.Seat{}).Where("flight_id = ?", flightID).Order("id").Pluck("id", &ids).Error)
	return ids
}

func flightInput(aircraftID int64, number string, dep, arr time.Duration) FlightInput {
	return FlightInput{
		FlightNumber:       number,
		DepartureAirport:   "JFK",
		DestinationAirport: "LAX",
		DepartureTime:      testDay.Add(dep),
		ArrivalTime:        testDay.Add(arr),
		AircraftID:         aircraftID,
		Price:              150,
	}
}

func userIdentity(u *gormModels.User) auth.UserClaims {
	return &auth.JWTClaims{UserIDValue: u.ID}
}

func adminIdentity() auth.UserClaims {
	return &auth.JWTClaims{UserIDValue: 9999, IsAdminValue: true}
}

func requireCategory(t *testing.T, err error, category common.ErrorCategory) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, category, common.CategoryOf(err), err.Error())
}
