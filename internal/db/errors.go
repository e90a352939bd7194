package db

import (
	"context"
	"errors"

	"booking-system/airline/internal/common"
	"booking-system/airline/internal/constants"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes that TranslateError cares about.
const (
	pgLockNotAvailable     = "55P03"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgUniqueViolation      = "23505"
	pgQueryCanceled        = "57014"
)

// TranslateError maps storage failures onto the application error taxonomy.
// AppErrors pass through untouched.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *common.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, ErrLockTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return common.NewRetryableConflict(constants.MsgLockTimeout, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgLockNotAvailable, pgSerializationFailure, pgDeadlockDetected, pgQueryCanceled:
			return common.NewRetryableConflict(constants.MsgLockTimeout, err)
		case pgUniqueViolation:
			return &common.AppError{Category: common.CategoryConflict, Message: constants.MsgConflict, Err: err}
		}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &common.AppError{Category: common.CategoryConflict, Message: constants.MsgConflict, Err: err}
	}

	return common.NewServerError(err)
}
