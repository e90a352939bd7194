package db

import (
	"database/sql"
	"fmt"

	"booking-system/airline/internal/config"
	"booking-system/airline/internal/logging"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InitPostgresORM opens the write pool. DB_DRIVER=sqlite selects a local
// SQLite file for development; it is capped at a single connection because
// SQLite has one writer.
func InitPostgresORM(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
		cfg.MaxOpenConns = 1
		cfg.MaxIdleConns = 1
	default:
		dialector = postgres.Open(cfg.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get connection pool: %w", err)
	}
	ConfigurePool(sqlDB, cfg)

	logging.Info("Connected to database via GORM",
		"driver", cfg.Driver,
		"max_open_conns", cfg.MaxOpenConns,
	)
	return db, nil
}

// ConfigurePool bounds a connection pool.
func ConfigurePool(sqlDB *sql.DB, cfg config.DatabaseConfig) {
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
}
