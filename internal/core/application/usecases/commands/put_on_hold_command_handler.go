package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// PutOnHoldCommandHandler pauses orders. The technician keeps the order and no
// new assignment is recorded.
type PutOnHoldCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewPutOnHoldCommandHandler creates a handler for holding orders.
func NewPutOnHoldCommandHandler(uowFactory OrderUoWFactory) PutOnHoldCommandHandler {
	return PutOnHoldCommandHandler{uowFactory: uowFactory}
}

// Handle moves the order from in_progress to on_hold with the command's reason.
func (h PutOnHoldCommandHandler) Handle(ctx context.Context, cmd PutOnHoldCommand) (*order.RepairOrder, error) {
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

	held, err := transitionOrder(ctx, uow.OrderRepository(), cmd.OrderID(), func(o *order.RepairOrder) error {
		return o.PutOnHold(cmd.Reason())
	})
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return held, nil
}
