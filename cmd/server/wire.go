package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"fare-tracker-service/internal/domain/repository"
	"fare-tracker-service/internal/infrastructure/config"
	"fare-tracker-service/internal/infrastructure/persistence"
	repo "fare-tracker-service/internal/interface/repository"
	"fare-tracker-service/internal/usecase"
	"fare-tracker-service/pkg/logger"
	"fare-tracker-service/pkg/metrics"
)

const metricsNamespace = "fare_tracker"

// app bundles the dependencies shared by every subcommand
type app struct {
	cfg        *config.Config
	log        *logger.ZapLogger
	metrics    *metrics.Metrics
	flightRepo repository.TrackedFlightRepository
	offerRepo  repository.OfferRepository
	closers    []func(context.Context) error
}

// newApp loads config and builds the upstream client. Commands that touch
// tracked flights call openStore afterwards.
func newApp(reg prometheus.Registerer) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewLogger(cfg.LogLevel)
	a := &app{
		cfg:       cfg,
		log:       log,
		metrics:   metrics.NewMetrics(metricsNamespace, reg),
		offerRepo: repo.NewRyanairOfferRepository(log, cfg.FaresAPIURL, cfg.Currency, cfg.LookupTimeout),
	}

	return a, nil
}

func (a *app) openStore(ctx context.Context, migrate bool) error {
	a.log.Info("Opening store", "driver", a.cfg.StoreDriver)

	switch a.cfg.StoreDriver {
	case config.StoreDriverPostgres:
		db, err := persistence.NewPostgresDB(a.cfg.PostgresURI)
		if err != nil {
			return err
		}
		if migrate {
			if err := repo.AutoMigrate(db); err != nil {
				_ = persistence.ClosePostgresDB(db)
				return fmt.Errorf("failed to migrate: %w", err)
			}
		}
		a.flightRepo = repo.NewGormTrackedFlightRepository(db)
		a.closers = append(a.closers, func(context.Context) error {
			return persistence.ClosePostgresDB(db)
		})

	case config.StoreDriverMongo:
		client, db, err := persistence.NewMongoClient(ctx, a.cfg.MongoURI, a.cfg.MongoUser, a.cfg.MongoPassword, a.cfg.MongoDB)
		if err != nil {
			return err
		}
		flightRepo, err := repo.NewMongoTrackedFlightRepository(ctx, db)
		if err != nil {
			_ = client.Disconnect(ctx)
			return err
		}
		a.flightRepo = flightRepo
		a.closers = append(a.closers, client.Disconnect)

	case config.StoreDriverMemory:
		a.log.Warn("Using in-memory store, tracked flights are lost on restart")
		a.flightRepo = repo.NewMemoryTrackedFlightRepository()

	default:
		return fmt.Errorf("unknown store driver %q", a.cfg.StoreDriver)
	}
	return nil
}

func (a *app) discovery() *usecase.RouteDiscovery {
	return usecase.NewRouteDiscovery(a.offerRepo, a.cfg.Origins, a.cfg.DiscoveryDelay, a.log, a.metrics)
}

func (a *app) telegram() (*repo.TelegramRepository, error) {
	if a.cfg.TelegramBotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}
	return repo.NewTelegramRepository(a.log, a.cfg.TelegramAPIURL, a.cfg.TelegramBotToken, a.cfg.TelegramPollTimeout), nil
}

func (a *app) close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.log.Error("Failed to close store", "error", err)
		}
	}
	a.log.Sync()
}
