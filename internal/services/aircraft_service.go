package services

import (
	"context"
	"strings"

	"booking-system/airline/internal/common"
	"booking-system/airline/internal/constants"
	"booking-system/airline/internal/db"
	"booking-system/airline/internal/db/repositories"
	"booking-system/airline/internal/models/dtos"
	gormModels "booking-system/airline/internal/models/gorm"

	"gorm.io/gorm"
)

type AircraftService struct {
	store    *db.Store
	aircraft *repositories.AircraftRepository
}

func NewAircraftService(store *db.Store) *AircraftService {
	return &AircraftService{
		store:    store,
		aircraft: repositories.NewAircraftRepository(store.DB),
	}
}

func (svc *AircraftService) Create(ctx context.Context, req dtos.AircraftReq) (*gormModels.Aircraft, error) {
	aircraft := &gormModels.Aircraft{
		Name:       strings.TrimSpace(req.Name),
		TotalSeats: req.TotalSeats,
		State:      constants.StateActive,
	}
	if err := svc.aircraft.Create(ctx, aircraft); err != nil {
		return nil, db.TranslateError(err)
	}
	return aircraft, nil
}

func (svc *AircraftService) Get(ctx context.Context, id int64) (*gormModels.Aircraft, error) {
	aircraft, err := svc.aircraft.GetActive(ctx, id)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	if aircraft == nil {
		return nil, common.NewNotFound(constants.MsgAircraftNotFound)
	}
	return aircraft, nil
}

func (svc *AircraftService) List(ctx context.Context) ([]gormModels.Aircraft, error) {
	aircraft, err := svc.aircraft.ListActive(ctx)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return aircraft, nil
}

// Update runs under the aircraft lock so a concurrent flight creation reads
// either the old or the new seat count, never a mix. Existing flights keep
// their inventory.
func (svc *AircraftService) Update(ctx context.Context, id int64, req dtos.AircraftReq) (*gormModels.Aircraft, error) {
	var aircraft *gormModels.Aircraft
	err := lockedTx(ctx, svc.store, func(tx *gorm.DB, releases *[]func()) error {
		if err := lockKey(ctx, svc.store, tx, releases, db.AircraftLockKey(id)); err != nil {
			return err
		}

		repo := svc.aircraft.WithTx(tx)
		updated, err := repo.Update(ctx, id, strings.TrimSpace(req.Name), req.TotalSeats)
		if err != nil {
			return err
		}
		if !updated {
			return common.NewNotFound(constants.MsgAircraftNotFound)
		}

		aircraft, err = repo.GetActive(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return aircraft, nil
}

// Delete tombstones an active aircraft. A second delete is NotFound. It waits
// for any flight provisioning on the aircraft, so no flight is scheduled
// onto it after the tombstone commits.
func (svc *AircraftService) Delete(ctx context.Context, id int64) error {
	return lockedTx(ctx, svc.store, func(tx *gorm.DB, releases *[]func()) error {
		if err := lockKey(ctx, svc.store, tx, releases, db.AircraftLockKey(id)); err != nil {
			return err
		}

		deleted, err := svc.aircraft.WithTx(tx).SetState(ctx, id, constants.StateActive, constants.StateDeleted)
		if err != nil {
			return err
		}
		if !deleted {
			return common.NewNotFound(constants.MsgAircraftNotFound)
		}
		return nil
	})
}

// Restore undeletes an aircraft. Restoring an active one is a no-op.
func (svc *AircraftService) Restore(ctx context.Context, id int64) (*gormModels.Aircraft, error) {
	var aircraft *gormModels.Aircraft
	err := lockedTx(ctx, svc.store, func(tx *gorm.DB, releases *[]func()) error {
		if err := lockKey(ctx, svc.store, tx, releases, db.AircraftLockKey(id)); err != nil {
			return err
		}

		repo := svc.aircraft.WithTx(tx)
		a, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return common.NewNotFound(constants.MsgAircraftNotFound)
		}
		if !a.State.IsActive() {
			if _, err := repo.SetState(ctx, id, constants.StateDeleted, constants.StateActive); err != nil {
				return err
			}
			a.State = constants.StateActive
		}

		aircraft = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return aircraft, nil
}
