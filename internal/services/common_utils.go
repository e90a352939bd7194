package services

import (
	"context"
	"time"

	"booking-system/airline/internal/auth"
	"booking-system/airline/internal/common"
	"booking-system/airline/internal/constants"
	"booking-system/airline/internal/db"
	"booking-system/airline/internal/events"
	"booking-system/airline/internal/logging"

	"gorm.io/gorm"
)

// publish sends a post-commit event. The change is already durable, so a
// broker failure is logged and swallowed.
func publish(ctx context.Context, publisher events.Publisher, event events.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logging.Warn("failed to publish event", "type", event.Type, "entity_id", event.EntityID, "error", err)
	}
}

func requireIdentity(identity auth.UserClaims) error {
	if identity == nil {
		return common.NewUnauthenticated(constants.MsgMissingToken)
	}
	return nil
}

func requireAdmin(identity auth.UserClaims) error {
	if err := requireIdentity(identity); err != nil {
		return err
	}
	if !identity.IsAdmin() {
		return common.NewForbidden(constants.MsgAdminOnly)
	}
	return nil
}

// lockedTx runs fn in one transaction. Locks fn appends to releases are let
// go once the transaction has ended, on every exit path including a panic.
func lockedTx(ctx context.Context, store *db.Store, fn func(tx *gorm.DB, releases *[]func()) error) error {
	var releases []func()
	defer func() { releaseAll(releases) }()

	return store.WithTx(ctx, func(tx *gorm.DB) error {
		return fn(tx, &releases)
	})
}

// lockKey takes one named lock inside tx and records its release.
func lockKey(ctx context.Context, store *db.Store, tx *gorm.DB, releases *[]func(), key string) error {
	release, err := store.Lock(ctx, tx, key)
	if err != nil {
		return err
	}
	*releases = append(*releases, release)
	return nil
}

// releaseAll runs lock releases in reverse acquisition order.
func releaseAll(releases []func()) {
	for i := len(releases) - 1; i >= 0; i-- {
		releases[i]()
	}
}

func utcNow() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }
