package db

import (
	"context"
	"fmt"
	"time"

	"booking-system/airline/internal/config"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// Store is the storage handle passed to services: the gorm write pool, the
// sqlx read pool and the named lock provider.
type Store struct {
	DB     *gorm.DB
	Read   *sqlx.DB
	Locker Locker

	driver      string
	lockTimeout time.Duration
}

func NewStore(gormDB *gorm.DB, readDB *sqlx.DB, driver string, lockTimeout time.Duration) *Store {
	return &Store{
		DB:          gormDB,
		Read:        readDB,
		Locker:      NewLocker(driver, lockTimeout),
		driver:      driver,
		lockTimeout: lockTimeout,
	}
}

func (s *Store) Driver() string { return s.driver }

// WithTx runs fn inside one transaction. fn returning an error, panicking or
// the context ending rolls everything back. The returned error has already
// gone through TranslateError.
func (s *Store) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.driver == config.DriverPostgres && s.lockTimeout > 0 {
			stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockTimeout.Milliseconds())
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return fn(tx)
	})
	return TranslateError(err)
}

// Lock takes a named lock inside tx. The caller defers release so it runs
// after WithTx has returned.
func (s *Store) Lock(ctx context.Context, tx *gorm.DB, key string) (func(), error) {
	return s.Locker.Acquire(ctx, tx, key)
}
