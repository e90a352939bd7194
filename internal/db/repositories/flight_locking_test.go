package repositories

import (
	"context"
	"testing"

	"booking-system/airline/internal/db/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The SQLite store drops FOR clauses, so row locking is checked against the
// SQL the Postgres dialect renders.
func TestFlightRepository_RowLockSQL(t *testing.T) {
	tests := []struct {
		name    string
		read    func(r *FlightRepository) error
		want    string
		notWant []string
	}{
		{
			name: "active for update",
			read: func(r *FlightRepository) error {
				_, err := r.GetActiveForUpdate(context.Background(), 7)
				return err
			},
			want:    "FOR UPDATE",
			notWant: []string{"FOR SHARE"},
		},
		{
			name: "active for share",
			read: func(r *FlightRepository) error {
				_, err := r.GetActiveForShare(context.Background(), 7)
				return err
			},
			want:    "FOR SHARE",
			notWant: []string{"FOR UPDATE"},
		},
		{
			name: "any state for update",
			read: func(r *FlightRepository) error {
				_, err := r.GetForUpdate(context.Background(), 7)
				return err
			},
			want:    "FOR UPDATE",
			notWant: []string{"state"},
		},
		{
			name: "plain read",
			read: func(r *FlightRepository) error {
				_, err := r.GetActive(context.Background(), 7)
				return err
			},
			notWant: []string{"FOR UPDATE", "FOR SHARE"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gormDB, rec := dbtest.NewDryRunPostgres(t)
			repo := NewFlightRepository(gormDB, nil)

			require.NoError(t, tc.read(repo))

			stmts := rec.Statements()
			require.Len(t, stmts, 1)
			assert.Contains(t, stmts[0], `FROM "flights"`)
			if tc.want != "" {
				assert.Contains(t, stmts[0], tc.want)
			}
			for _, s := range tc.notWant {
				assert.NotContains(t, stmts[0], s)
			}
		})
	}
}
