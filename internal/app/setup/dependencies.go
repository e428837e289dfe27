package setup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/LavaJover/shvark-buffer-service/internal/config"
	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/memory"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/notifier"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-buffer-service/internal/infrastructure/postgres/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config       *config.BufferConfig
	Logger       *slog.Logger
	DB           *gorm.DB
	Memory       *memory.Store
	Publisher    *kafka.DefaultKafkaPublisher
	Subscriber   *kafka.DefaultKafkaSubscriber
	Events       domain.EventPublisher
	Registry     *prometheus.Registry
	Metrics      *metrics.EngineMetrics
	HTTPMetrics  *metrics.HTTPMetrics
	Repositories *Repositories
}

type Repositories struct {
	Buffers       domain.BufferRepository
	Inventory     domain.InventoryRepository
	MasterData    domain.MasterDataRepository
	Orders        domain.OrderRepository
	Breaches      domain.BreachRepository
	Replenishment domain.ReplenishmentRepository
	Decoupling    domain.DecouplingRepository
}

func InitializeDependencies(cfg *config.BufferConfig, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config:   cfg,
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	}
	deps.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.Metrics = metrics.NewEngineMetrics(deps.Registry)
	deps.HTTPMetrics = metrics.NewHTTPMetrics(deps.Registry)

	switch cfg.Storage.Driver {
	case "memory":
		deps.Memory = memory.NewStore()
		deps.Repositories = memoryRepositories(deps.Memory)
		logger.Warn("Using in-memory storage, state is lost on restart")
	default:
		deps.DB = postgres.MustInitDB(cfg)
		if !cfg.BufferDB.AutoMigrate {
			if err := migrate.RunMigrations(deps.DB, cfg.BufferDB.MigrationsPath, logger); err != nil {
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		deps.Repositories = postgresRepositories(deps.DB)
	}

	if cfg.KafkaService.Enabled {
		if err := deps.initKafka(); err != nil {
			return nil, err
		}
	}
	if cfg.Notifier.WebhookURL != "" {
		deps.Events = notifier.NewBreachWebhook(cfg.Notifier, deps.Events, logger.With("component", "breach_webhook"))
		logger.Info("Breach webhook enabled", "min_severity", cfg.Notifier.MinSeverity)
	}

	return deps, nil
}

func (d *Dependencies) initKafka() error {
	pub, err := kafka.NewDefaultKafkaPublisher(d.Config.KafkaService)
	if err != nil {
		return fmt.Errorf("kafka publisher: %w", err)
	}
	sub, err := kafka.NewDefaultKafkaSubscriber(d.Config.KafkaService, d.Logger)
	if err != nil {
		return fmt.Errorf("kafka subscriber: %w", err)
	}

	d.Publisher = pub
	d.Subscriber = sub
	d.Events = kafka.NewEventPublisher(pub, kafka.Topics{
		Breach:        d.Config.KafkaService.BreachTopic,
		Replenishment: d.Config.KafkaService.ReplenishmentTopic,
		Recalculation: d.Config.KafkaService.RecalculationTopic,
	})
	d.Logger.Info("Kafka enabled", "broker", d.Config.KafkaService.Broker())
	return nil
}

func memoryRepositories(store *memory.Store) *Repositories {
	return &Repositories{
		Buffers:       store,
		Inventory:     store,
		MasterData:    store,
		Orders:        store,
		Breaches:      store,
		Replenishment: store,
		Decoupling:    store,
	}
}

func postgresRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Buffers:       repository.NewDefaultBufferRepo(db),
		Inventory:     repository.NewDefaultInventoryRepo(db),
		MasterData:    repository.NewDefaultMasterDataRepo(db),
		Orders:        repository.NewDefaultOrderRepo(db),
		Breaches:      repository.NewDefaultBreachRepo(db),
		Replenishment: repository.NewDefaultReplenishmentRepo(db),
		Decoupling:    repository.NewDefaultDecouplingRepo(db),
	}
}

// Ping проверяет доступность хранилища для health-check.
func (d *Dependencies) Ping(ctx context.Context) error {
	if d.DB == nil {
		return nil
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Dependencies) Close() error {
	var errs []error
	if d.Publisher != nil {
		errs = append(errs, d.Publisher.Close())
	}
	if d.DB != nil {
		if sqlDB, err := d.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}
