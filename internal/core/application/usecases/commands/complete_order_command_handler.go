package commands

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// CompleteOrderCommandHandler closes in-progress orders.
//
// Example:
//
//	handler := NewCompleteOrderCommandHandler(uowFactory, kernel.SystemClock{})
//	cmd, _ := NewCompleteOrderCommand(orderID)
//	done, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInvalidTransition) {
//	    // the order is not in progress
//	}
type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
func NewCompleteOrderCommandHandler(uowFactory UoWFactory, clock kernel.Clock) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle moves the order to completed and closes its open assignment in the same
// transaction.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (*order.RepairOrder, error) {
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

	now := h.clock.Now()

	completed, err := transitionOrder(ctx, uow.OrderRepository(), cmd.OrderID(), func(o *order.RepairOrder) error {
		return o.Complete(now)
	})
	if err != nil {
		return nil, err
	}

	err = closeOpenAssignment(ctx, uow.AssignmentRepository(), completed.ID(), func(a *assignment.Assignment) error {
		return a.Complete(now)
	})
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return completed, nil
}
