package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// ReorderOrderCommandHandler applies manual queue reordering. Only the moved
// order is written; its createdAt is shifted so that the ranking places it where
// the dispatcher asked.
type ReorderOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	ranker     services.QueueRanker
}

// NewReorderOrderCommandHandler creates a handler for queue reordering.
func NewReorderOrderCommandHandler(uowFactory OrderUoWFactory, ranker services.QueueRanker) ReorderOrderCommandHandler {
	return ReorderOrderCommandHandler{
		uowFactory: uowFactory,
		ranker:     ranker,
	}
}

// Handle repositions the order. A missing target yields errs.ObjectNotFoundError
// and nothing changes; an order already in place is returned without a write.
func (h ReorderOrderCommandHandler) Handle(ctx context.Context, cmd ReorderOrderCommand) (*order.RepairOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	moved, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	var target *order.RepairOrder
	if targetID := cmd.TargetOrderID(); targetID != nil {
		if target, err = orderRepo.Get(ctx, *targetID); err != nil {
			return nil, err
		}
	}

	queue, err := orderRepo.FetchPending(ctx, moved.DealershipID())
	if err != nil {
		return nil, err
	}

	createdAt, changed, err := h.ranker.ReorderBefore(queue, moved, target)
	if err != nil {
		return nil, err
	}
	if !changed {
		return moved, nil
	}

	if err = moved.MoveInQueue(createdAt); err != nil {
		return nil, err
	}

	if err = orderRepo.ConditionalUpdate(ctx, moved, order.Pending); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return moved, nil
}
