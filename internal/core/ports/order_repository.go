// Package ports defines the contracts between the dispatch core and its
// infrastructure: order and assignment storage, the technician directory and
// change notification.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for repair orders.
//
// Every write except Add is conditional: ConditionalUpdate succeeds only if the
// stored row still has the expected status and the version the aggregate was
// loaded with. A lost race is reported as errs.ConflictError and nothing is
// written. Infrastructure failures are reported as errs.StoreUnavailableError.
type OrderRepository interface {
	// Add persists a new order.
	Add(ctx context.Context, aggregate *order.RepairOrder) error

	// Get returns the order with the given id or errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.RepairOrder, error)

	// FetchPending returns every pending order of a dealership, in no particular order.
	FetchPending(ctx context.Context, dealershipID kernel.UUID) ([]*order.RepairOrder, error)

	// FetchByTechnician returns every in-progress or on-hold order assigned to technicianID.
	FetchByTechnician(ctx context.Context, technicianID kernel.UUID) ([]*order.RepairOrder, error)

	// ConditionalUpdate writes aggregate if the stored status equals expectedStatus
	// and the stored version equals aggregate.Version(). On success the aggregate's
	// version is incremented.
	ConditionalUpdate(ctx context.Context, aggregate *order.RepairOrder, expectedStatus order.Status) error

	// Delete removes the order and all of its assignments under the same condition
	// as ConditionalUpdate. A missing order is errs.ObjectNotFoundError, a changed
	// one is errs.ConflictError.
	Delete(ctx context.Context, aggregate *order.RepairOrder, expectedStatus order.Status) error
}
