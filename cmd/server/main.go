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

	"charlesfind/safaritracker/internal/api"
	"charlesfind/safaritracker/internal/common"
	"charlesfind/safaritracker/internal/config"
	"charlesfind/safaritracker/internal/constants"
	"charlesfind/safaritracker/internal/db"
	"charlesfind/safaritracker/internal/db/repositories"
	"charlesfind/safaritracker/internal/jobs"
	"charlesfind/safaritracker/internal/logging"
	"charlesfind/safaritracker/internal/metrics"
	"charlesfind/safaritracker/internal/providers"
	"charlesfind/safaritracker/internal/routes"
	"charlesfind/safaritracker/internal/services"
	"charlesfind/safaritracker/internal/workers"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	// Initialize structured logging
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("SafariTracker starting up",
		"environment", cfg.AppEnv,
		"store_backend", cfg.Store.Backend,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)
	health := map[string]api.Pinger{}

	// Sighting store
	var (
		store       providers.SightingStore
		statsSource services.StatsSource
	)
	switch cfg.Store.Backend {
	case config.BackendPostgREST:
		store = providers.NewPostgRESTStore(cfg.Store.URL, cfg.Store.APIKey, cfg.Store.Timeout, logging.Named("postgrest"))
		logging.Info("Using hosted table store", "url", cfg.Store.URL)

	default:
		gormDB, err := db.InitORM(cfg, logging.Named("orm"))
		if err != nil {
			logging.Fatal("Failed to open sighting database", "backend", cfg.Store.Backend, "error", err)
		}
		store = repositories.NewSightingRepository(gormDB, cfg.Store.Backend)
		logging.Info("Connected to sighting database (GORM)", "backend", cfg.Store.Backend)

		if cfg.Store.Backend == config.BackendPostgres {
			sqlxDB, err := db.InitPostgres(cfg.Database.DSN())
			if err != nil {
				logging.Fatal("Failed to connect to Postgres (sqlx)", "error", err)
			}
			defer sqlxDB.Close()

			statsRepo := repositories.NewSightingStatsRepo(sqlxDB)
			statsSource = statsRepo
			health["postgres_stats"] = statsRepo
			logging.Info("Connected to Postgres (sqlx)")
		}
	}
	store = providers.NewInstrumentedStore(store, metricsReg)

	// Cache and the urgent alert pipeline need Redis; without it they fall
	// back to the in-memory cache and no alerts.
	var (
		cache    common.CacheInterface
		notifier services.AlertNotifier = services.NopNotifier{}
	)
	if cfg.Redis.Enabled() {
		redisClient := common.NewRedisClient(cfg.Redis, logging.Named("redis"))
		defer redisClient.Close()

		cache = common.NewRedisCacheService(redisClient)
		health["redis"] = api.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})

		queue := common.NewRedisQueueService(redisClient, logging.Named("redis_queue"))
		notifier = services.NewQueueNotifier(queue, constants.UrgentAlertStream)

		publisher := newAlertPublisher(cfg)
		workers.InitWorkers(ctx, queue, publisher, metricsReg, logging.Named("workers"))
	} else {
		cache = common.NewCacheService(cfg.Stats.CacheTTL, 2*cfg.Stats.CacheTTL)
		logging.Warn("REDIS_ADDR not set; using in-memory cache and urgent alerts are disabled")
	}
	defer cache.Close()

	deps := api.InitDependencies(cfg, store, statsSource, cache, notifier, metricsReg, logging.Named("api"))
	for name, pinger := range health {
		deps.Health[name] = pinger
	}

	scheduler, err := jobs.InitializeJobs(ctx, cfg.Stats.RefreshCron, deps.Services.Stats, logging.Named("jobs"))
	if err != nil {
		logging.Fatal("Failed to schedule jobs", "error", err)
	}
	defer scheduler.Stop()

	router, err := routes.RegisterRoutes(cfg, deps, prometheus.DefaultGatherer)
	if err != nil {
		logging.Fatal("Failed to build router", "error", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		logging.Info("Server starting", "port", cfg.HTTPPort, "environment", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("HTTP server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logging.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error("Graceful shutdown failed", "error", err)
	}
}

// newAlertPublisher returns the MQTT publisher when a broker is configured,
// otherwise a publisher that only logs.
func newAlertPublisher(cfg *config.Config) common.AlertPublisher {
	if !cfg.MQTT.Enabled() {
		return common.NewLogPublisher(logging.Named("alerts"))
	}

	publisher, err := common.NewMQTTPublisher(cfg.MQTT, constants.UrgentAlertMQTTTopic, logging.Named("mqtt"))
	if err != nil {
		logging.Error("MQTT unavailable; urgent alerts will only be logged", "broker", cfg.MQTT.Broker, "error", err)
		return common.NewLogPublisher(logging.Named("alerts"))
	}
	return publisher
}
