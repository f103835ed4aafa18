// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern and the schema of the dispatch store.
//
// A unit of work wraps one database transaction. Repositories obtained from it
// after Begin run inside that transaction and report every written order; once
// Commit succeeds the unit of work publishes one ports.OrderChanged per written
// order through the configured ports.ChangeNotifier.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, notifier, kernel.SystemClock{}, logger)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency considerations:
//   - Each UnitOfWork instance owns its transaction; goroutines must not share one
//   - Conflicting writers are detected by the conditional update of the order
//     repository rather than by locks taken on read
package postgres

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/adapters/out/postgres/assignmentrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/pgerrs"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

// ErrNoTransaction is returned by Commit without a preceding Begin.
var ErrNoTransaction = errors.New("postgres: no active transaction")

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db       *gorm.DB
	notifier ports.ChangeNotifier
	clock    kernel.Clock
	logger   *slog.Logger
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, notifier, kernel.SystemClock{}, logger)
func NewGormUnitOfWorkFactory(
	db *gorm.DB,
	notifier ports.ChangeNotifier,
	clock kernel.Clock,
	logger *slog.Logger,
) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:       db,
		notifier: notifier,
		clock:    clock,
		logger:   logger.With("component", "postgres_unit_of_work"),
	}
}

// Create produces a new UnitOfWork instance. Each instance keeps its own
// transaction state and change list.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:       f.db,
		notifier: f.notifier,
		clock:    f.clock,
		logger:   f.logger,
	}
}

// GormUnitOfWork coordinates one database transaction and the change
// notifications it produces.
type GormUnitOfWork struct {
	db       *gorm.DB
	tx       *gorm.DB
	notifier ports.ChangeNotifier
	clock    kernel.Clock
	logger   *slog.Logger
	changes  []ports.OrderChanged
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance do not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return pgerrs.Wrapf(tx.Error, "begin transaction")
	}

	uow.tx = tx
	return nil
}

// Commit finalizes the transaction and then notifies the tracked changes.
// Notification failures are logged and never returned.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.changes = nil
		return pgerrs.Wrapf(err, "commit transaction")
	}

	changes := uow.changes
	uow.changes = nil
	for _, change := range changes {
		if notifyErr := uow.notifier.NotifyOrderChanged(ctx, change); notifyErr != nil {
			uow.logger.WarnContext(ctx, "order change notification failed",
				"orderId", change.OrderID.String(), "error", notifyErr)
		}
	}

	return nil
}

// Rollback discards the transaction. Without an active transaction, for example
// after Commit, it does nothing.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.changes = nil
	return pgerrs.Wrap(err)
}

// OrderRepository returns an order repository bound to the current transaction,
// or to the plain connection when no transaction is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// AssignmentRepository returns an assignment repository bound like OrderRepository.
func (uow *GormUnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return assignmentrepo.NewGormAssignmentRepository(uow.conn())
}

// TrackOrder registers an order written within this unit of work.
func (uow *GormUnitOfWork) TrackOrder(o *order.RepairOrder, deleted bool) {
	uow.changes = append(uow.changes, ports.OrderChangedFrom(o, deleted, uow.clock.Now()))
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
