package memory

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository reads and writes orders of a Store. Bound to a unit of work
// it works on the transaction copy, otherwise on the committed state.
type OrderRepository struct {
	store   *Store
	tx      *state
	tracker ports.OrderTracker
}

func newOrderRepository(store *Store, tx *state, tracker ports.OrderTracker) *OrderRepository {
	return &OrderRepository{store: store, tx: tx, tracker: tracker}
}

func (r *OrderRepository) run(ctx context.Context, fn func(st *state) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	return r.store.withLock(ctx, fn)
}

// Add stores a new order. An id that is already taken is a conflict.
func (r *OrderRepository) Add(ctx context.Context, aggregate *order.RepairOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.run(ctx, func(st *state) error {
		if _, ok := st.orders[aggregate.ID()]; ok {
			return errs.NewConflictError("repairOrder", aggregate.ID().String())
		}
		st.orders[aggregate.ID()] = aggregate.Snapshot()
		r.tracker.TrackOrder(aggregate, false)
		return nil
	})
}

func (r *OrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.RepairOrder, error) {
	var found *order.RepairOrder
	err := r.run(ctx, func(st *state) error {
		snap, ok := st.orders[id]
		if !ok {
			return errs.NewObjectNotFoundError("repairOrder", id.String())
		}
		o, err := order.RestoreRepairOrder(snap)
		if err != nil {
			return err
		}
		found = o
		return nil
	})
	return found, err
}

func (r *OrderRepository) FetchPending(ctx context.Context, dealershipID kernel.UUID) ([]*order.RepairOrder, error) {
	return r.fetch(ctx, func(s order.Snapshot) bool {
		return s.Status == order.Pending && s.DealershipID.IsEqual(dealershipID)
	})
}

func (r *OrderRepository) FetchByTechnician(
	ctx context.Context,
	technicianID kernel.UUID,
) ([]*order.RepairOrder, error) {
	return r.fetch(ctx, func(s order.Snapshot) bool {
		return s.Status.HasAssignee() && s.AssignedTo != nil && s.AssignedTo.IsEqual(technicianID)
	})
}

func (r *OrderRepository) fetch(ctx context.Context, match func(s order.Snapshot) bool) ([]*order.RepairOrder, error) {
	orders := make([]*order.RepairOrder, 0)
	err := r.run(ctx, func(st *state) error {
		for _, snap := range st.orders {
			if !match(snap) {
				continue
			}
			o, err := order.RestoreRepairOrder(snap)
			if err != nil {
				return err
			}
			orders = append(orders, o)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ConditionalUpdate writes aggregate only over the exact state it was loaded
// from. A missing order is reported as a conflict, like a zero-row update.
func (r *OrderRepository) ConditionalUpdate(
	ctx context.Context,
	aggregate *order.RepairOrder,
	expectedStatus order.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.run(ctx, func(st *state) error {
		stored, ok := st.orders[aggregate.ID()]
		if !ok || stored.Status != expectedStatus || stored.Version != aggregate.Version() {
			return errs.NewConflictError("repairOrder", aggregate.ID().String())
		}
		snap := aggregate.Snapshot()
		snap.Version++
		st.orders[aggregate.ID()] = snap
		aggregate.IncrementVersion()
		r.tracker.TrackOrder(aggregate, false)
		return nil
	})
}

// Delete removes the order and its assignment trail.
func (r *OrderRepository) Delete(ctx context.Context, aggregate *order.RepairOrder, expectedStatus order.Status) error {
	id := aggregate.ID()
	return r.run(ctx, func(st *state) error {
		snap, ok := st.orders[id]
		if !ok {
			return errs.NewObjectNotFoundError("repairOrder", id.String())
		}
		if snap.Status != expectedStatus || snap.Version != aggregate.Version() {
			return errs.NewConflictError("repairOrder", id.String())
		}
		deleted, err := order.RestoreRepairOrder(snap)
		if err != nil {
			return err
		}
		delete(st.orders, id)
		for aid, rec := range st.assignments {
			if rec.orderID.IsEqual(id) {
				delete(st.assignments, aid)
			}
		}
		r.tracker.TrackOrder(deleted, true)
		return nil
	})
}
