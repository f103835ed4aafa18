package memory

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// ErrNoTransaction is returned by Commit without a preceding Begin.
var ErrNoTransaction = errors.New("memory: no active transaction")

// UnitOfWorkFactory creates units of work over one Store.
//
// Example:
//
//	store := memory.NewStore()
//	factory := memory.NewUnitOfWorkFactory(store, notifier, kernel.SystemClock{}, logger)
//	uow := factory.Create()
type UnitOfWorkFactory struct {
	store    *Store
	notifier ports.ChangeNotifier
	clock    kernel.Clock
	logger   *slog.Logger
}

// NewUnitOfWorkFactory creates a factory. notifier receives the changes of every
// committed unit of work.
func NewUnitOfWorkFactory(
	store *Store,
	notifier ports.ChangeNotifier,
	clock kernel.Clock,
	logger *slog.Logger,
) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		store:    store,
		notifier: notifier,
		clock:    clock,
		logger:   logger.With("component", "memory_unit_of_work"),
	}
}

// Create returns a fresh unit of work.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{
		store:    f.store,
		notifier: f.notifier,
		clock:    f.clock,
		logger:   f.logger,
	}
}

// UnitOfWork is a serialized transaction over a Store. Begin waits for the
// store, so callers must always end the unit of work with Commit or Rollback.
type UnitOfWork struct {
	store    *Store
	notifier ports.ChangeNotifier
	clock    kernel.Clock
	logger   *slog.Logger

	tx      *state
	changes []ports.OrderChanged
}

// Begin takes the store and copies its state. A second Begin is a no-op.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}
	if err := uow.store.lock(ctx); err != nil {
		return err
	}
	uow.tx = uow.store.data.clone()
	return nil
}

// Commit publishes the transaction copy as the committed state and notifies
// every tracked change.
func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}

	uow.store.data = uow.tx
	uow.tx = nil
	uow.store.unlock()

	changes := uow.changes
	uow.changes = nil
	for _, change := range changes {
		if err := uow.notifier.NotifyOrderChanged(ctx, change); err != nil {
			uow.logger.WarnContext(ctx, "order change notification failed",
				"orderId", change.OrderID.String(), "error", err)
		}
	}

	return nil
}

// Rollback discards the transaction copy. Without an active transaction it does nothing.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}
	uow.tx = nil
	uow.changes = nil
	uow.store.unlock()
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return newOrderRepository(uow.store, uow.tx, uow)
}

func (uow *UnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return newAssignmentRepository(uow.store, uow.tx)
}

// TrackOrder records a written order for notification after commit.
func (uow *UnitOfWork) TrackOrder(o *order.RepairOrder, deleted bool) {
	uow.changes = append(uow.changes, ports.OrderChangedFrom(o, deleted, uow.clock.Now()))
}
