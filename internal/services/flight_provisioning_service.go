package services

import (
	"context"
	"strings"
	"time"

	"booking-system/airline/internal/common"
	"booking-system/airline/internal/constants"
	"booking-system/airline/internal/db"
	"booking-system/airline/internal/db/repositories"
	"booking-system/airline/internal/events"
	"booking-system/airline/internal/metrics"
	"booking-system/airline/internal/models/dtos"
	gormModels "booking-system/airline/internal/models/gorm"

	"gorm.io/gorm"
)

// FlightInput is a validated flight body.
type FlightInput struct {
	FlightNumber       string
	DepartureAirport   string
	DestinationAirport string
	DepartureTime      time.Time
	ArrivalTime        time.Time
	AircraftID         int64
	Price              float64
}

func NewFlightInput(req dtos.FlightReq) FlightInput {
	in := FlightInput{
		FlightNumber:       req.FlightNumber,
		DepartureAirport:   req.DepartureAirport,
		DestinationAirport: req.DestinationAirport,
		DepartureTime:      req.DepartureTime,
		ArrivalTime:        req.ArrivalTime,
		AircraftID:         req.AircraftID,
	}
	if req.Price != nil {
		in.Price = *req.Price
	}
	return in
}

// normalize upper-cases codes and moves times to UTC so comparisons in
// storage are zone independent.
func (in FlightInput) normalize() (FlightInput, error) {
	in.FlightNumber = strings.ToUpper(strings.TrimSpace(in.FlightNumber))
	in.DepartureAirport = strings.ToUpper(strings.TrimSpace(in.DepartureAirport))
	in.DestinationAirport = strings.ToUpper(strings.TrimSpace(in.DestinationAirport))
	in.DepartureTime = in.DepartureTime.UTC()
	in.ArrivalTime = in.ArrivalTime.UTC()

	if !in.ArrivalTime.After(in.DepartureTime) {
		return in, common.NewValidationError(map[string]string{"arrival_time": constants.MsgArrivalBeforeDeparture})
	}
	if in.Price < 0 {
		return in, common.NewValidationError(map[string]string{"price": "must be at least 0"})
	}
	if in.Price > constants.MaxPrice {
		return in, common.NewValidationError(map[string]string{"price": "must be at most 99999999.99"})
	}
	return in, nil
}

func (in FlightInput) apply(flight *gormModels.Flight) {
	flight.FlightNumber = in.FlightNumber
	flight.DepartureAirport = in.DepartureAirport
	flight.DestinationAirport = in.DestinationAirport
	flight.DepartureTime = in.DepartureTime
	flight.ArrivalTime = in.ArrivalTime
	flight.AircraftID = in.AircraftID
	flight.Price = in.Price
}

// FlightProvisioningService owns every write that can change a flight
// schedule. Writes for one aircraft, and for one flight number, are
// serialized by named locks taken in that order.
type FlightProvisioningService struct {
	store    *db.Store
	aircraft *repositories.AircraftRepository
	flights  *repositories.FlightRepository
	seats    *repositories.SeatRepository
	cache    common.CacheInterface
	events   events.Publisher
	metrics  *metrics.MetricsRegistry
}

func NewFlightProvisioningService(
	store *db.Store,
	cache common.CacheInterface,
	publisher events.Publisher,
	metricsReg *metrics.MetricsRegistry,
) *FlightProvisioningService {
	return &FlightProvisioningService{
		store:    store,
		aircraft: repositories.NewAircraftRepository(store.DB),
		flights:  repositories.NewFlightRepository(store.DB, store.Read),
		seats:    repositories.NewSeatRepository(store.DB, store.Read),
		cache:    cache,
		events:   publisher,
		metrics:  metricsReg,
	}
}

// CreateFlight inserts the flight and its full seat inventory in one
// transaction, or nothing at all.
func (svc *FlightProvisioningService) CreateFlight(ctx context.Context, input FlightInput) (*gormModels.Flight, error) {
	in, err := input.normalize()
	if err != nil {
		return nil, err
	}

	var flight *gormModels.Flight
	err = lockedTx(ctx, svc.store, func(tx *gorm.DB, releases *[]func()) error {
		if err := svc.lockSchedule(ctx, tx, releases, in.AircraftID, in.FlightNumber); err != nil {
			return err
		}

		aircraft, err := svc.aircraft.WithTx(tx).GetActive(ctx, in.AircraftID)
		if err != nil {
			return err
		}
		if aircraft == nil {
			return common.NewNotFound(constants.MsgAircraftNotFound)
		}

		flights := svc.flights.WithTx(tx)
		if err := svc.checkOverlap(ctx, flights, in.FlightNumber, in.DepartureTime, in.ArrivalTime, 0); err != nil {
			return err
		}

		f := &gormModels.Flight{State: constants.StateActive}
		in.apply(f)
		if err := flights.Create(ctx, f); err != nil {
			return err
		}

		if _, err := svc.seats.WithTx(tx).CreateInventory(ctx, f.ID, aircraft.TotalSeats); err != nil {
			return err
		}
		svc.metrics.SeatsGeneratedTotal.Add(float64(aircraft.TotalSeats))

		flight = f
		return nil
	})

	svc.observe("create", err)
	if err != nil {
		return nil, err
	}

	svc.invalidate(ctx, flight.DepartureTime)
	svc.emit(ctx, events.TypeFlightCreated, flight)
	return flight, nil
}

// UpdateFlight rewrites the schedule of an active flight. The seat
// inventory generated at creation is kept as is.
func (svc *FlightProvisioningService) UpdateFlight(ctx context.Context, id int64, input FlightInput) (*gormModels.Flight, error) {
	in, err := input.normalize()
	if err != nil {
		return nil, err
	}

	var (
		flight        *gormModels.Flight
		prevDeparture time.Time
	)
	err = lockedTx(ctx, svc.store, func(tx *gorm.DB, releases *[]func()) error {
		if err := svc.lockSchedule(ctx, tx, releases, in.AircraftID, in.FlightNumber); err != nil {
			return err
		}

		flights := svc.flights.WithTx(tx)
		f, err := flights.GetActiveForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if f == nil {
			return common.NewNotFound(constants.MsgFlightNotFound)
		}

		aircraft, err := svc.aircraft.WithTx(tx).GetActive(ctx, in.AircraftID)
		if err != nil {
			return err
		}
		if aircraft == nil {
			return common.NewNotFound(constants.MsgAircraftNotFound)
		}

		if err := svc.checkOverlap(ctx, flights, in.FlightNumber, in.DepartureTime, in.ArrivalTime, id); err != nil {
			return err
		}

		prevDeparture = f.DepartureTime
		in.apply(f)
		updated, err := flights.Update(ctx, f)
		if err != nil {
			return err
		}
		if !updated {
			return common.NewNotFound(constants.MsgFlightNotFound)
		}

		flight = f
		return nil
	})

	svc.observe("update", err)
	if err != nil {
		return nil, err
	}

	svc.invalidate(ctx, prevDeparture, flight.DepartureTime)
	svc.emit(ctx, events.TypeFlightUpdated, flight)
	return flight, nil
}

// DeleteFlight tombstones an active flight. Deleting twice is NotFound.
// The flight row is locked first, so a booking that holds it shared either
// commits before the delete or sees the flight gone.
func (svc *FlightProvisioningService) DeleteFlight(ctx context.Context, id int64) error {
	var flight *gormModels.Flight
	err := svc.store.WithTx(ctx, func(tx *gorm.DB) error {
		flights := svc.flights.WithTx(tx)
		f, err := flights.GetActiveForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if f == nil {
			return common.NewNotFound(constants.MsgFlightNotFound)
		}

		deleted, err := flights.SetState(ctx, id, constants.StateActive, constants.StateDeleted)
		if err != nil {
			return err
		}
		if !deleted {
			return common.NewNotFound(constants.MsgFlightNotFound)
		}

		f.State = constants.StateDeleted
		flight = f
		return nil
	})
	if err != nil {
		return err
	}

	svc.invalidate(ctx, flight.DepartureTime)
	svc.emit(ctx, events.TypeFlightDeleted, flight)
	return nil
}

// RestoreFlight brings a deleted flight back. It runs the same overlap check
// as creation because another flight may have taken the slot meanwhile.
// Restoring an active flight is a no-op.
func (svc *FlightProvisioningService) RestoreFlight(ctx context.Context, id int64) (*gormModels.Flight, error) {
	current, err := svc.flights.Get(ctx, id)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	if current == nil {
		return nil, common.NewNotFound(constants.MsgFlightNotFound)
	}
	if current.State.IsActive() {
		return current, nil
	}

	var (
		flight   *gormModels.Flight
		restored bool
	)
	err = lockedTx(ctx, svc.store, func(tx *gorm.DB, releases *[]func()) error {
		if err := svc.lockSchedule(ctx, tx, releases, current.AircraftID, current.FlightNumber); err != nil {
			return err
		}

		flights := svc.flights.WithTx(tx)
		f, err := flights.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if f == nil {
			return common.NewNotFound(constants.MsgFlightNotFound)
		}
		flight = f
		if f.State.IsActive() {
			return nil
		}

		aircraft, err := svc.aircraft.WithTx(tx).GetActive(ctx, f.AircraftID)
		if err != nil {
			return err
		}
		if aircraft == nil {
			return common.NewNotFound(constants.MsgAircraftNotFound)
		}

		if err := svc.checkOverlap(ctx, flights, f.FlightNumber, f.DepartureTime, f.ArrivalTime, f.ID); err != nil {
			return err
		}

		ok, err := flights.SetState(ctx, id, constants.StateDeleted, constants.StateActive)
		if err != nil {
			return err
		}
		f.State = constants.StateActive
		restored = ok
		return nil
	})

	svc.observe("restore", err)
	if err != nil {
		return nil, err
	}

	if restored {
		svc.invalidate(ctx, flight.DepartureTime)
		svc.emit(ctx, events.TypeFlightRestored, flight)
	}
	return flight, nil
}

// lockSchedule takes the aircraft lock, then the flight number lock.
func (svc *FlightProvisioningService) lockSchedule(ctx context.Context, tx *gorm.DB, releases *[]func(), aircraftID int64, flightNumber string) error {
	locks := []struct {
		scope string
		key   string
	}{
		{"aircraft", db.AircraftLockKey(aircraftID)},
		{"flight_number", db.FlightNumberLockKey(flightNumber)},
	}

	for _, l := range locks {
		start := time.Now()
		err := lockKey(ctx, svc.store, tx, releases, l.key)
		svc.metrics.LockWaitSeconds.WithLabelValues(l.scope).Observe(time.Since(start).Seconds())
		if err != nil {
			return err
		}
	}
	return nil
}

func (svc *FlightProvisioningService) checkOverlap(ctx context.Context, flights *repositories.FlightRepository, flightNumber string, departure, arrival time.Time, excludeID int64) error {
	clashes, err := flights.FindOverlapping(ctx, flightNumber, departure, arrival, excludeID)
	if err != nil {
		return err
	}
	if len(clashes) > 0 {
		return common.NewConflict(constants.MsgDuplicateFlight)
	}
	return nil
}

func (svc *FlightProvisioningService) observe(operation string, err error) {
	svc.metrics.FlightsProvisionedTotal.WithLabelValues(operation, metrics.Outcome(string(common.CategoryOf(err)))).Inc()
}

func (svc *FlightProvisioningService) invalidate(ctx context.Context, departures ...time.Time) {
	invalidateListings(ctx, svc.cache, departures...)
}

func (svc *FlightProvisioningService) emit(ctx context.Context, eventType string, flight *gormModels.Flight) {
	publish(ctx, svc.events, events.Event{
		Type:       eventType,
		EntityID:   flight.ID,
		FlightID:   flight.ID,
		OccurredAt: utcNow(),
	})
}
