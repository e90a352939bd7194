package services

import (
	"context"
	"encoding/json"
	"time"

	"booking-system/airline/internal/common"
	"booking-system/airline/internal/constants"
	"booking-system/airline/internal/db"
	"booking-system/airline/internal/db/repositories"
	"booking-system/airline/internal/logging"
	"booking-system/airline/internal/metrics"
	gormModels "booking-system/airline/internal/models/gorm"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// FlightService serves flight reads. Date listings go through the cache and
// concurrent misses for one date share a single query.
type FlightService struct {
	flights *repositories.FlightRepository
	cache   common.CacheInterface
	ttl     time.Duration
	group   singleflight.Group
	metrics *metrics.MetricsRegistry
}

func NewFlightService(store *db.Store, cache common.CacheInterface, ttl time.Duration, metricsReg *metrics.MetricsRegistry) *FlightService {
	return &FlightService{
		flights: repositories.NewFlightRepository(store.DB, store.Read),
		cache:   cache,
		ttl:     ttl,
		metrics: metricsReg,
	}
}

// listingVersionTTL outlives any listing entry.
const listingVersionTTL = 24 * time.Hour

func flightsByDateKey(date time.Time) string {
	return string(constants.CachePrefixFlightsByDate) + date.UTC().Format(constants.DateLayout)
}

// listingVersionKey changes on every invalidation of the day's listing.
func listingVersionKey(date time.Time) string {
	return string(constants.CachePrefixFlightsByDate) + "VERSION_" + date.UTC().Format(constants.DateLayout)
}

func listingVersion(ctx context.Context, cache common.CacheInterface, date time.Time) string {
	raw, _ := cache.Get(ctx, listingVersionKey(date))
	return string(raw)
}

// invalidateListings bumps the version of each day before dropping its
// listing, so a fill that started earlier discards its own write.
func invalidateListings(ctx context.Context, cache common.CacheInterface, dates ...time.Time) {
	if cache == nil {
		return
	}
	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		cache.Set(ctx, listingVersionKey(d), []byte(uuid.NewString()), listingVersionTTL)
		keys = append(keys, flightsByDateKey(d))
	}
	cache.Delete(ctx, keys...)
}

func (svc *FlightService) GetFlight(ctx context.Context, id int64) (*gormModels.Flight, error) {
	flight, err := svc.flights.GetActive(ctx, id)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	if flight == nil {
		return nil, common.NewNotFound(constants.MsgFlightNotFound)
	}
	return flight, nil
}

// ListByDate returns active flights departing on the UTC day of date.
func (svc *FlightService) ListByDate(ctx context.Context, date time.Time) ([]gormModels.Flight, error) {
	key := flightsByDateKey(date)
	pattern := string(constants.CachePrefixFlightsByDate)

	if svc.cache != nil {
		if raw, ok := svc.cache.Get(ctx, key); ok {
			var flights []gormModels.Flight
			if err := json.Unmarshal(raw, &flights); err == nil {
				svc.metrics.CacheHitsTotal.WithLabelValues(pattern).Inc()
				return flights, nil
			}
			logging.Warn("dropping undecodable cache entry", "key", key)
			svc.cache.Delete(ctx, key)
		}
		svc.metrics.CacheMissesTotal.WithLabelValues(pattern).Inc()
	}

	// Waiters share the load; it outlives the leader's request.
	v, err, _ := svc.group.Do(key, func() (interface{}, error) {
		loadCtx := context.WithoutCancel(ctx)

		var version string
		if svc.cache != nil {
			version = listingVersion(loadCtx, svc.cache, date)
		}
		flights, err := svc.flights.ListByDate(loadCtx, date)
		if err != nil {
			return nil, err
		}
		if svc.cache != nil {
			if raw, err := json.Marshal(flights); err == nil {
				svc.cache.Set(loadCtx, key, raw, svc.ttl)
				if listingVersion(loadCtx, svc.cache, date) != version {
					svc.cache.Delete(loadCtx, key)
				}
			}
		}
		return flights, nil
	})
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return v.([]gormModels.Flight), nil
}
