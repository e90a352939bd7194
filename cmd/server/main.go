package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booking-system/airline/internal/api"
	"booking-system/airline/internal/common"
	"booking-system/airline/internal/config"
	"booking-system/airline/internal/db"
	"booking-system/airline/internal/events"
	"booking-system/airline/internal/logging"
	"booking-system/airline/internal/metrics"
	"booking-system/airline/internal/middleware"
	"booking-system/airline/internal/routes"
	"booking-system/airline/internal/workers"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// @title Airline Booking API
// @version 1.0
// @description Flight schedule, seat inventory and booking service.
// @host localhost:8080
// @BasePath /
func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Initialize structured logging
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Airline API starting up",
		"environment", cfg.AppEnv,
		"db_driver", cfg.Database.Driver,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	gormDB, readDB, err := openDatabase(cfg.Database)
	if err != nil {
		logging.Fatal("Failed to connect to database", "error", err.Error())
	}
	defer readDB.Close()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(gormDB); err != nil {
			logging.Fatal("Failed to migrate schema", "error", err.Error())
		}
		logging.Info("Schema migrated")
	}

	store := db.NewStore(gormDB, readDB, cfg.Database.Driver, cfg.Database.LockTimeout)

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = common.NewRedisClient(cfg.Redis)
		defer redisClient.Close()
	} else {
		logging.Info("Redis not configured, using in-process cache")
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		logging.Info("Publishing domain events", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}
	defer publisher.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsReg := metrics.NewMetricsRegistry(reg)

	deps := api.InitDependencies(cfg, store, redisClient, publisher, metricsReg)
	authLimiter := middleware.NewRateLimiter(cfg.Auth.RateLimit, cfg.Auth.RateBurst, metricsReg)

	upSince := time.Now()
	server := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           routes.RegisterRoutes(deps, reg, authLimiter, upSince),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Info("Server starting", "address", cfg.HTTP.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if cfg.Cache.WarmInterval > 0 {
		warmer := workers.NewFlightCacheWarmer(deps.Services.Flights, cfg.Cache.WarmInterval, cfg.Cache.WarmDays)
		g.Go(func() error { return warmer.Start(gctx) })
	}
	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logging.Error("Server stopped with error", "error", err.Error())
		os.Exit(1)
	}
	logging.Info("Server stopped")
}

// openDatabase returns the gorm write pool and the sqlx read pool. SQLite
// shares one connection between them.
func openDatabase(cfg config.DatabaseConfig) (*gorm.DB, *sqlx.DB, error) {
	gormDB, err := db.InitPostgresORM(cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Driver == config.DriverSQLite {
		readDB, err := db.NewReadDB(gormDB, "sqlite3")
		return gormDB, readDB, err
	}

	readDB, err := db.InitPostgres(cfg)
	return gormDB, readDB, err
}
