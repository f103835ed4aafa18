package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderChanged signals that an order was written. It carries no payload beyond
// what a subscriber needs to decide whether to refresh its view.
type OrderChanged struct {
	OrderID      kernel.UUID
	DealershipID kernel.UUID
	Status       order.Status
	Deleted      bool
	OccurredAt   time.Time
}

// OrderChangedFrom builds the change signal of an aggregate.
func OrderChangedFrom(o *order.RepairOrder, deleted bool, at time.Time) OrderChanged {
	return OrderChanged{
		OrderID:      o.ID(),
		DealershipID: o.DealershipID(),
		Status:       o.Status(),
		Deleted:      deleted,
		OccurredAt:   at,
	}
}

// ChangeNotifier publishes change signals after a successful commit. Delivery is
// best effort: a failing notifier never fails the operation that produced the change.
type ChangeNotifier interface {
	NotifyOrderChanged(ctx context.Context, change OrderChanged) error
}

// OrderTracker is implemented by units of work. Repositories report every order
// they write, and the unit of work turns the reports into OrderChanged signals
// once its transaction commits.
type OrderTracker interface {
	TrackOrder(o *order.RepairOrder, deleted bool)
}
