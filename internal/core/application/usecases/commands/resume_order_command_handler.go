package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// ResumeOrderCommandHandler continues held orders. Capacity is not re-checked: a
// technician resuming their own held work never counts as a new claim.
type ResumeOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewResumeOrderCommandHandler creates a handler for resuming held orders.
func NewResumeOrderCommandHandler(uowFactory OrderUoWFactory) ResumeOrderCommandHandler {
	return ResumeOrderCommandHandler{uowFactory: uowFactory}
}

// Handle moves the order from on_hold back to in_progress.
func (h ResumeOrderCommandHandler) Handle(ctx context.Context, cmd ResumeOrderCommand) (*order.RepairOrder, error) {
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

	resumed, err := transitionOrder(ctx, uow.OrderRepository(), cmd.OrderID(), (*order.RepairOrder).Resume)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return resumed, nil
}
