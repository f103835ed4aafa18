package memory_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu      sync.Mutex
	changes []ports.OrderChanged
	err     error
}

func (n *recordingNotifier) NotifyOrderChanged(_ context.Context, change ports.OrderChanged) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, change)
	return n.err
}

func (n *recordingNotifier) recorded() []ports.OrderChanged {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.OrderChanged(nil), n.changes...)
}

func newFactory() (*memory.UnitOfWorkFactory, *recordingNotifier) {
	notifier := &recordingNotifier{}
	factory := memory.NewUnitOfWorkFactory(memory.NewStore(), notifier, kernel.NewFixedClock(now),
		slog.New(slog.DiscardHandler))
	return factory, notifier
}

func newPendingOrder(t *testing.T, dealershipID kernel.UUID, createdAt time.Time) *order.RepairOrder {
	t.Helper()
	o, err := order.NewRepairOrder(kernel.NewUUID(), "RO", "", dealershipID,
		order.PriorityWait, order.DefaultDifficulty, createdAt)
	require.NoError(t, err)
	return o
}

// seed commits orders in their own unit of work.
func seed(t *testing.T, factory *memory.UnitOfWorkFactory, orders ...*order.RepairOrder) {
	t.Helper()
	ctx := t.Context()
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	for _, o := range orders {
		require.NoError(t, uow.OrderRepository().Add(ctx, o))
	}
	require.NoError(t, uow.Commit(ctx))
}
