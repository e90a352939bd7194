package api

import (
	"context"
	"time"

	"booking-system/airline/internal/auth"
	"booking-system/airline/internal/common"
	"booking-system/airline/internal/config"
	"booking-system/airline/internal/db"
	"booking-system/airline/internal/events"
	"booking-system/airline/internal/metrics"
	"booking-system/airline/internal/models/dtos"
	"booking-system/airline/internal/models/entities"
	gormModels "booking-system/airline/internal/models/gorm"
	"booking-system/airline/internal/services"
	"booking-system/airline/internal/validation"

	"github.com/redis/go-redis/v9"
)

// Service contracts the handlers depend on. The services package provides
// the implementations; tests substitute mocks.
type (
	UserAPI interface {
		Register(ctx context.Context, req dtos.RegisterUserReq) (*gormModels.User, string, error)
		Login(ctx context.Context, req dtos.LoginReq) (*gormModels.User, string, error)
	}

	AircraftAPI interface {
		Create(ctx context.Context, req dtos.AircraftReq) (*gormModels.Aircraft, error)
		Get(ctx context.Context, id int64) (*gormModels.Aircraft, error)
		List(ctx context.Context) ([]gormModels.Aircraft, error)
		Update(ctx context.Context, id int64, req dtos.AircraftReq) (*gormModels.Aircraft, error)
		Delete(ctx context.Context, id int64) error
		Restore(ctx context.Context, id int64) (*gormModels.Aircraft, error)
	}

	FlightReader interface {
		GetFlight(ctx context.Context, id int64) (*gormModels.Flight, error)
		ListByDate(ctx context.Context, date time.Time) ([]gormModels.Flight, error)
	}

	FlightProvisioner interface {
		CreateFlight(ctx context.Context, in services.FlightInput) (*gormModels.Flight, error)
		UpdateFlight(ctx context.Context, id int64, in services.FlightInput) (*gormModels.Flight, error)
		DeleteFlight(ctx context.Context, id int64) error
		RestoreFlight(ctx context.Context, id int64) (*gormModels.Flight, error)
	}

	SeatAPI interface {
		GetSeat(ctx context.Context, id int64) (*gormModels.Seat, error)
		ListForFlightOnDate(ctx context.Context, flightID int64, date time.Time) ([]entities.SeatListing, error)
		RenumberSeat(ctx context.Context, identity auth.UserClaims, id int64, seatNumber string) (*gormModels.Seat, error)
	}

	BookingAPI interface {
		CreateBooking(ctx context.Context, identity auth.UserClaims, flightID, seatID int64) (*gormModels.Booking, error)
		GetBooking(ctx context.Context, identity auth.UserClaims, id int64) (*gormModels.Booking, error)
	}
)

type Services struct {
	Users        UserAPI
	Aircraft     AircraftAPI
	Flights      FlightReader
	Provisioning FlightProvisioner
	Seats        SeatAPI
	Bookings     BookingAPI
}

type Dependencies struct {
	Services  *Services
	Validator *validation.Validator
	Tokens    *auth.TokenService
	Store     *db.Store
	Redis     *redis.Client
	Metrics   *metrics.MetricsRegistry
}

// InitDependencies wires services over an already opened store. redisClient
// may be nil, in which case flight listings use the in-process cache.
func InitDependencies(
	cfg *config.Config,
	store *db.Store,
	redisClient *redis.Client,
	publisher events.Publisher,
	metricsReg *metrics.MetricsRegistry,
) *Dependencies {
	var cache common.CacheInterface
	if redisClient != nil {
		cache = common.NewRedisCacheService(redisClient)
	} else {
		cache = common.NewCacheService(cfg.Cache.FlightsTTL, 2*cfg.Cache.FlightsTTL)
	}

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	svcs := &Services{
		Users:        services.NewUserService(store, tokens, cfg.Auth.BcryptCost),
		Aircraft:     services.NewAircraftService(store),
		Flights:      services.NewFlightService(store, cache, cfg.Cache.FlightsTTL, metricsReg),
		Provisioning: services.NewFlightProvisioningService(store, cache, publisher, metricsReg),
		Seats:        services.NewSeatService(store),
		Bookings:     services.NewBookingService(store, publisher, metricsReg),
	}

	return &Dependencies{
		Services:  svcs,
		Validator: validation.New(),
		Tokens:    tokens,
		Store:     store,
		Redis:     redisClient,
		Metrics:   metricsReg,
	}
}
