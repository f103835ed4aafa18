package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrReorderOrderCommandIsNotConstructed = errors.New(
	"ReorderOrderCommand must be created via NewReorderOrderCommand constructor",
)

// ReorderOrderCommand moves a pending order immediately before another order of
// the same priority bucket, or to the end of its bucket when no target is given.
type ReorderOrderCommand struct {
	orderID       kernel.UUID
	targetOrderID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewReorderOrderCommand validates the moved order and the optional target.
func NewReorderOrderCommand(orderID kernel.UUID, targetOrderID *kernel.UUID) (ReorderOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ReorderOrderCommand{}, err
	}

	var target *kernel.UUID
	if targetOrderID != nil {
		if err := targetOrderID.Validate(); err != nil {
			return ReorderOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("targetOrderId", err)
		}
		id := *targetOrderID
		target = &id
	}

	return ReorderOrderCommand{
		orderID:       orderID,
		targetOrderID: target,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReorderOrderCommand) Validate() error {
	return c.guard.Validate(ErrReorderOrderCommandIsNotConstructed)
}

func (c ReorderOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TargetOrderID returns the order to precede, or nil to move to the bucket end.
func (c ReorderOrderCommand) TargetOrderID() *kernel.UUID {
	if c.targetOrderID == nil {
		return nil
	}
	id := *c.targetOrderID
	return &id
}
