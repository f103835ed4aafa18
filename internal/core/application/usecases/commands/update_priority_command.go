package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrUpdatePriorityCommandIsNotConstructed = errors.New(
	"UpdatePriorityCommand must be created via NewUpdatePriorityCommand constructor",
)

// UpdatePriorityCommand moves a pending order into another priority bucket.
type UpdatePriorityCommand struct {
	orderID  kernel.UUID
	priority order.PriorityClass

	guard guard.ConstructorGuard
}

// NewUpdatePriorityCommand validates the target and the new priority class.
func NewUpdatePriorityCommand(orderID kernel.UUID, priority int) (UpdatePriorityCommand, error) {
	p, priorityErr := order.NewPriorityClass(priority)
	if err := errors.Join(orderID.Validate(), priorityErr); err != nil {
		return UpdatePriorityCommand{}, err
	}

	return UpdatePriorityCommand{
		orderID:  orderID,
		priority: p,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePriorityCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePriorityCommandIsNotConstructed)
}

func (c UpdatePriorityCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdatePriorityCommand) Priority() order.PriorityClass {
	return c.priority
}
