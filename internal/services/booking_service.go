package services

import (
	"context"
	"time"

	"booking-system/airline/internal/auth"
	"booking-system/airline/internal/common"
	"booking-system/airline/internal/constants"
	"booking-system/airline/internal/db"
	"booking-system/airline/internal/db/repositories"
	"booking-system/airline/internal/events"
	"booking-system/airline/internal/metrics"
	gormModels "booking-system/airline/internal/models/gorm"

	"gorm.io/gorm"
)

// BookingService turns a verified identity plus a seat into a booking.
type BookingService struct {
	store    *db.Store
	flights  *repositories.FlightRepository
	seats    *repositories.SeatRepository
	bookings *repositories.BookingRepository
	events   events.Publisher
	metrics  *metrics.MetricsRegistry
	now      func() time.Time
}

func NewBookingService(store *db.Store, publisher events.Publisher, metricsReg *metrics.MetricsRegistry) *BookingService {
	return &BookingService{
		store:    store,
		flights:  repositories.NewFlightRepository(store.DB, store.Read),
		seats:    repositories.NewSeatRepository(store.DB, store.Read),
		bookings: repositories.NewBookingRepository(store.DB),
		events:   publisher,
		metrics:  metricsReg,
		now:      utcNow,
	}
}

// CreateBooking holds seatID on flightID for the caller. The seat row stays
// locked from the availability check through the flag flip, so of several
// concurrent callers exactly one commits and the rest get a conflict.
func (svc *BookingService) CreateBooking(ctx context.Context, identity auth.UserClaims, flightID, seatID int64) (*gormModels.Booking, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	var booking *gormModels.Booking
	err := svc.store.WithTx(ctx, func(tx *gorm.DB) error {
		flight, err := svc.flights.WithTx(tx).GetActiveForShare(ctx, flightID)
		if err != nil {
			return err
		}
		if flight == nil {
			return common.NewNotFound(constants.MsgFlightNotFound)
		}

		seats := svc.seats.WithTx(tx)
		seat, err := seats.LockAvailable(ctx, seatID, flightID)
		if err != nil {
			return err
		}
		if seat == nil {
			return common.NewConflict(constants.MsgSeatAlreadyBooked)
		}

		b := &gormModels.Booking{
			UserID:      identity.UserID(),
			FlightID:    flightID,
			SeatID:      seat.ID,
			BookingTime: svc.now(),
		}
		inserted, err := svc.bookings.WithTx(tx).Create(ctx, b)
		if err != nil {
			return err
		}
		if inserted == 0 {
			return common.NewConflict(constants.MsgSeatAlreadyBooked)
		}

		// Zero rows here means the lock did not hold; treat it as a lost race.
		held, err := seats.MarkHeld(ctx, seat.ID)
		if err != nil {
			return err
		}
		if held == 0 {
			return common.NewConflict(constants.MsgSeatAlreadyBooked)
		}

		booking = b
		return nil
	})

	svc.metrics.BookingsTotal.WithLabelValues(metrics.Outcome(string(common.CategoryOf(err)))).Inc()
	if err != nil {
		return nil, err
	}

	publish(ctx, svc.events, events.Event{
		Type:       events.TypeBookingCreated,
		EntityID:   booking.ID,
		UserID:     booking.UserID,
		FlightID:   booking.FlightID,
		SeatID:     booking.SeatID,
		OccurredAt: booking.BookingTime,
	})
	return booking, nil
}

// GetBooking returns a booking to its owner or to an admin. Anyone else gets
// NotFound so booking ids cannot be enumerated.
func (svc *BookingService) GetBooking(ctx context.Context, identity auth.UserClaims, id int64) (*gormModels.Booking, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	booking, err := svc.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	if booking == nil || (!identity.IsAdmin() && booking.UserID != identity.UserID()) {
		return nil, common.NewNotFound(constants.MsgBookingNotFound)
	}
	return booking, nil
}
