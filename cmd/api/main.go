package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"staybook/internal/api"
	"staybook/internal/config"
	"staybook/internal/database"
	"staybook/internal/domain"
	"staybook/internal/events"
	"staybook/internal/logging"
	"staybook/internal/metrics"
	"staybook/internal/models"
	"staybook/internal/payment"
	"staybook/internal/repository"
	"staybook/internal/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, root, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}
	// компоненты получают корневой логгер и сами добавляют component
	logger := logging.Component(root, "api-main")

	catalog, err := loadCatalog(cfg.CatalogPath, logger)
	if err != nil {
		return err
	}

	db, err := initDatabase(cfg, catalog, root, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if !cfg.API.Enabled {
		logger.Warn().Msg("API is disabled in config, but starting API application. Check your config.")
	}

	redisClient := initRedis(cfg, logger)
	if redisClient != nil {
		defer (func() { _ = repository.Close(redisClient) })()
	}
	state := initPaymentState(redisClient, root)

	bus := initEventBus(logging.Component(root, "events"))

	processor, err := initProcessor(cfg, root, logger)
	if err != nil {
		return err
	}

	var holds domain.PaymentStateRepository
	var holdTTL time.Duration
	if cfg.Booking.HoldsEnabled {
		holds = state
		holdTTL = cfg.Payments.SessionTTL
	}

	availability := service.NewAvailabilityService(db, holds, root)
	allocator := service.NewGroupAllocator(availability, cfg.Booking.GroupBookingsEnabled, root)
	reservations := service.NewReservationService(db, availability, allocator, holds, bus, service.ReservationConfig{
		MaxAdvanceDays: cfg.Booking.MaxAdvanceDays,
		HoldTTL:        holdTTL,
	}, root)
	gateway := service.NewPaymentGateway(db, processor, holds, bus, cfg.Payments.Currency, cfg.Payments.SessionTTL, root)
	reconciler := service.NewPaymentReconciler(db, availability, state, cfg.Booking.EventMarkerTTL, bus, root)

	grpcServer, err := api.NewGRPCServer(&cfg.API, api.NewAvailabilityService(availability, allocator), root)
	if err != nil {
		logger.Error().Err(err).Msg("create grpc server")
		return err
	}

	httpServer := api.NewHTTPServer(&cfg.API, api.Services{
		Availability: availability,
		Groups:       allocator,
		Reservations: reservations,
		Payments:     gateway,
		Reconciler:   reconciler,
		Webhooks:     payment.NewWebhookParser(cfg.Payments.WebhookSecret),
		Store:        db,
		SuccessURL:   cfg.Payments.SuccessURL,
		CancelURL:    cfg.Payments.CancelURL,
	}, root)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startMetrics(ctx, cfg, logger)
	startBackups(ctx, cfg, db, root)

	return startServers(ctx, grpcServer, httpServer, cfg, logger)
}

func loadConfigAndLogger() (*config.Config, *zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}

	return cfg, baseLogger, closer, nil
}

func loadCatalog(path string, logger *zerolog.Logger) (*models.Catalog, error) {
	if env := os.Getenv("CATALOG_PATH"); env != "" {
		path = env
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error().Err(err).Str("catalog_path", path).Msg("read catalog")
		return nil, err
	}

	var catalog models.Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		logger.Error().Err(err).Str("catalog_path", path).Msg("parse catalog")
		return nil, err
	}

	for i := range catalog.Units {
		u := &catalog.Units[i]
		if u.Currency == "" {
			u.Currency = models.DefaultCurrency
		}
		if u.PricingMode == "" {
			u.PricingMode = models.PricingPerNight
		}
		if u.MinStay < 1 {
			u.MinStay = 1
		}
	}
	return &catalog, nil
}

func initDatabase(cfg *config.Config, catalog *models.Catalog, root, logger *zerolog.Logger) (*database.DB, error) {
	db, err := database.NewDB(cfg.Database.Path, root)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return nil, err
	}

	if err := db.SeedCatalog(context.Background(), catalog); err != nil {
		db.Close()
		logger.Error().Err(err).Msg("seed catalog")
		return nil, err
	}
	logger.Info().
		Int("units", len(catalog.Units)).
		Int("overrides", len(catalog.Overrides)).
		Int("seasons", len(catalog.Seasons)).
		Msg("catalog loaded")
	return db, nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := repository.Ping(ctx, redisClient); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing with in-memory payment state")
		_ = redisClient.Close()
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

// initPaymentState prefers Redis and falls back to process memory.
func initPaymentState(client *redis.Client, root *zerolog.Logger) domain.PaymentStateRepository {
	memory := repository.NewMemoryPaymentStateRepository()
	if client == nil {
		return memory
	}
	return repository.NewFailoverPaymentStateRepository(repository.NewRedisPaymentStateRepository(client), memory, root)
}

func initEventBus(logger *zerolog.Logger) *events.EventBus {
	bus := events.NewEventBus()
	bus.OnError(func(e *events.Event, err error) {
		logger.Error().Err(err).Str("event_type", e.Type).Msg("event handler failed")
	})
	bus.Subscribe(events.EventCompensationRequired, func(e *events.Event) error {
		logger.Warn().RawJSON("payload", e.Payload).Msg("manual refund required")
		return nil
	})
	return bus
}

func initProcessor(cfg *config.Config, root, logger *zerolog.Logger) (domain.PaymentProcessor, error) {
	switch cfg.Payments.Provider {
	case "stripe":
		logger.Info().Msg("payments via stripe checkout")
		return payment.NewStripeProcessor(cfg.Payments.SecretKey, nil, root), nil
	case "local":
		logger.Warn().Msg("payments via local processor; no money is charged")
		return payment.NewLocalProcessor(root), nil
	default:
		return nil, fmt.Errorf("unknown payments provider %q", cfg.Payments.Provider)
	}
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startBackups(ctx context.Context, cfg *config.Config, db *database.DB, root *zerolog.Logger) {
	if !cfg.Backup.Enabled {
		return
	}
	go database.NewBackupService(db, cfg.Backup, root).Start(ctx)
}

func startServers(
	ctx context.Context,
	grpcServer *api.GRPCServer,
	httpServer *api.HTTPServer,
	cfg *config.Config,
	logger *zerolog.Logger,
) error {
	go func() {
		if err := grpcServer.Serve(); err != nil {
			logger.Error().Err(err).Msg("grpc server stopped")
		}
	}()

	go func() {
		if !cfg.API.HTTP.Enabled {
			return
		}
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	logger.Info().Str("grpc_addr", grpcServer.Addr()).Int("http_port", cfg.API.HTTP.Port).Msg("API server started")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	grpcServer.Shutdown(shutdownCtx)
	_ = httpServer.Shutdown(shutdownCtx)

	logger.Info().Msg("API server stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
