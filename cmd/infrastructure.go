package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/adapters/out/notify"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/techdir"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewLogger returns the JSON logger of the service.
func NewLogger(cfg Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

// OpenDatabase connects to Postgres. Constraint violations are translated into
// gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated.
func OpenDatabase(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return db, nil
}

// NewNotifier publishes to RabbitMQ when RABBITMQ_URL is set, otherwise it
// logs. The returned close function is never nil.
func NewNotifier(cfg Config, log *slog.Logger) (ports.ChangeNotifier, func() error, error) {
	if cfg.RabbitMQURL == "" {
		return notify.NewLogNotifier(log), func() error { return nil }, nil
	}
	n, err := notify.DialRabbitNotifier(cfg.RabbitMQURL, cfg.RabbitMQExchange)
	if err != nil {
		return nil, nil, err
	}
	return n, n.Close, nil
}

// Store is the unit of work factory of the configured driver plus its cleanup.
type Store struct {
	Factory ports.UnitOfWorkFactory
	Close   func() error
}

// OpenStore builds the configured store. The Postgres schema is migrated first.
func OpenStore(ctx context.Context, cfg Config, notifier ports.ChangeNotifier, clock kernel.Clock, log *slog.Logger) (Store, error) {
	if cfg.StoreDriver == StoreDriverMemory {
		log.WarnContext(ctx, "using the in-memory store, orders are lost on restart")
		return Store{
			Factory: memory.NewUnitOfWorkFactory(memory.NewStore(), notifier, clock, log),
			Close:   func() error { return nil },
		}, nil
	}

	db, err := OpenDatabase(cfg)
	if err != nil {
		return Store{}, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return Store{}, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err = postgres.Migrate(ctx, db); err != nil {
		_ = sqlDB.Close()
		return Store{}, err
	}
	return Store{
		Factory: postgres.NewGormUnitOfWorkFactory(db, notifier, clock, log),
		Close:   sqlDB.Close,
	}, nil
}

// OpenDirectory loads the technicians file.
func OpenDirectory(cfg Config, log *slog.Logger) (*techdir.FileDirectory, error) {
	return techdir.NewFileDirectory(cfg.TechniciansFile, log)
}
