// Package dbtest builds throwaway SQLite-backed stores for tests.
package dbtest

import (
	"fmt"
	"testing"
	"time"

	"booking-system/airline/internal/config"
	"booking-system/airline/internal/db"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewStore returns a migrated in-memory store. A single connection makes
// concurrent transactions queue behind each other the way row locks would.
func NewStore(t testing.TB) *db.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gormDB))

	readDB, err := db.NewReadDB(gormDB, "sqlite3")
	require.NoError(t, err)

	return db.NewStore(gormDB, readDB, config.DriverSQLite, 5*time.Second)
}
