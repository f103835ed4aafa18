package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// UpdateDifficultyCommandHandler edits the difficulty of pending orders under the
// same read and write rules as UpdatePriorityCommandHandler.
type UpdateDifficultyCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateDifficultyCommandHandler creates a handler for difficulty edits.
func NewUpdateDifficultyCommandHandler(uowFactory OrderUoWFactory) UpdateDifficultyCommandHandler {
	return UpdateDifficultyCommandHandler{uowFactory: uowFactory}
}

// Handle changes the difficulty level of the order.
func (h UpdateDifficultyCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateDifficultyCommand,
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
		return o.ChangeDifficulty(cmd.Difficulty())
	})
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}
