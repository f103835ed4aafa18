package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// UpdatePriorityCommandHandler edits the priority of pending orders.
//
// A non-pending order at read time yields errs.InvalidTransitionError. An order
// claimed between the read and the write yields errs.ConflictError and keeps its
// old priority.
type UpdatePriorityCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdatePriorityCommandHandler creates a handler for priority edits.
func NewUpdatePriorityCommandHandler(uowFactory OrderUoWFactory) UpdatePriorityCommandHandler {
	return UpdatePriorityCommandHandler{uowFactory: uowFactory}
}

// Handle changes the priority class of the order.
func (h UpdatePriorityCommandHandler) Handle(
	ctx context.Context,
	cmd UpdatePriorityCommand,
) (*order.RepairOrder, error) {
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

	updated, err := transitionOrder(ctx, uow.OrderRepository(), cmd.OrderID(), func(o *order.RepairOrder) error {
		return o.ChangePriority(cmd.Priority())
	})
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}
