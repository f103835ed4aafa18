package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReturnToQueueCommandIsNotConstructed = errors.New(
	"ReturnToQueueCommand must be created via NewReturnToQueueCommand constructor",
)

// ReturnToQueueCommand puts an assigned order back into the pending queue.
// The open assignment is recorded as abandoned.
type ReturnToQueueCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReturnToQueueCommand creates the command for orderID.
func NewReturnToQueueCommand(orderID kernel.UUID) (ReturnToQueueCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ReturnToQueueCommand{}, err
	}

	return ReturnToQueueCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReturnToQueueCommand) Validate() error {
	return c.guard.Validate(ErrReturnToQueueCommandIsNotConstructed)
}

// OrderID returns the target order.
func (c ReturnToQueueCommand) OrderID() kernel.UUID {
	return c.orderID
}
