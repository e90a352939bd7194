package services

import (
	"context"
	"strings"
	"time"

	"booking-system/airline/internal/auth"
	"booking-system/airline/internal/common"
	"booking-system/airline/internal/constants"
	"booking-system/airline/internal/db"
	"booking-system/airline/internal/db/repositories"
	"booking-system/airline/internal/models/entities"
	gormModels "booking-system/airline/internal/models/gorm"

	"gorm.io/gorm"
)

// SeatService exposes seat reads and the admin renumbering path. Seats of
// deleted flights are invisible.
type SeatService struct {
	store   *db.Store
	flights *repositories.FlightRepository
	seats   *repositories.SeatRepository
}

func NewSeatService(store *db.Store) *SeatService {
	return &SeatService{
		store:   store,
		flights: repositories.NewFlightRepository(store.DB, store.Read),
		seats:   repositories.NewSeatRepository(store.DB, store.Read),
	}
}

func (svc *SeatService) GetSeat(ctx context.Context, id int64) (*gormModels.Seat, error) {
	seat, err := svc.seats.GetByID(ctx, id)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	if seat == nil {
		return nil, common.NewNotFound(constants.MsgSeatNotFound)
	}

	flight, err := svc.flights.GetActive(ctx, seat.FlightID)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	if flight == nil {
		return nil, common.NewNotFound(constants.MsgSeatNotFound)
	}
	return seat, nil
}

// ListForFlightOnDate lists the seats of flightID if its schedule touches
// the UTC day of date. An empty list means the flight does not fly that day.
func (svc *SeatService) ListForFlightOnDate(ctx context.Context, flightID int64, date time.Time) ([]entities.SeatListing, error) {
	flight, err := svc.flights.GetActive(ctx, flightID)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	if flight == nil {
		return nil, common.NewNotFound(constants.MsgFlightNotFound)
	}

	seats, err := svc.seats.ListForFlightOnDate(ctx, flightID, date)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return seats, nil
}

// RenumberSeat changes a seat's label. Availability only ever changes
// through a booking.
func (svc *SeatService) RenumberSeat(ctx context.Context, identity auth.UserClaims, id int64, seatNumber string) (*gormModels.Seat, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}
	seatNumber = strings.ToUpper(strings.TrimSpace(seatNumber))

	var seat *gormModels.Seat
	err := svc.store.WithTx(ctx, func(tx *gorm.DB) error {
		seats := svc.seats.WithTx(tx)
		s, err := seats.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return common.NewNotFound(constants.MsgSeatNotFound)
		}

		flight, err := svc.flights.WithTx(tx).GetActive(ctx, s.FlightID)
		if err != nil {
			return err
		}
		if flight == nil {
			return common.NewNotFound(constants.MsgSeatNotFound)
		}

		if _, err := seats.UpdateNumber(ctx, id, seatNumber); err != nil {
			return err
		}
		s.SeatNumber = seatNumber
		seat = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seat, nil
}
