package commands

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// ReturnToQueueCommandHandler puts assigned orders back into the pending queue.
type ReturnToQueueCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

// NewReturnToQueueCommandHandler creates a handler for returning orders to the queue.
func NewReturnToQueueCommandHandler(uowFactory UoWFactory, clock kernel.Clock) ReturnToQueueCommandHandler {
	return ReturnToQueueCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle clears the assignee and hold reason and marks the open assignment abandoned.
// The order keeps its createdAt and so returns to its former queue position.
func (h ReturnToQueueCommandHandler) Handle(
	ctx context.Context,
	cmd ReturnToQueueCommand,
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

	returned, err := transitionOrder(ctx, uow.OrderRepository(), cmd.OrderID(), (*order.RepairOrder).ReturnToQueue)
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	err = closeOpenAssignment(ctx, uow.AssignmentRepository(), returned.ID(), func(a *assignment.Assignment) error {
		return a.Abandon(now)
	})
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return returned, nil
}
