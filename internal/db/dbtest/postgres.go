package dbtest

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SQLRecorder collects the statements a dry-run session builds.
type SQLRecorder struct {
	mu    sync.Mutex
	stmts []string
}

func (r *SQLRecorder) record(tx *gorm.DB) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stmts = append(r.stmts, tx.Statement.SQL.String())
}

func (r *SQLRecorder) Statements() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.stmts...)
}

// NewDryRunPostgres returns a Postgres-dialect session that renders SQL
// without a server. Queries and raw statements land in the recorder.
func NewDryRunPostgres(t testing.TB) (*gorm.DB, *SQLRecorder) {
	t.Helper()

	gormDB, err := gorm.Open(postgres.Open("host=localhost user=airline dbname=airline sslmode=disable"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               gormlogger.Discard,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	rec := &SQLRecorder{}
	require.NoError(t, gormDB.Callback().Query().After("gorm:query").Register("dbtest:record_query", rec.record))
	require.NoError(t, gormDB.Callback().Raw().After("gorm:raw").Register("dbtest:record_raw", rec.record))
	return gormDB, rec
}
