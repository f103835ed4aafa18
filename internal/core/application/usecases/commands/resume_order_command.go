package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrResumeOrderCommandIsNotConstructed = errors.New(
	"ResumeOrderCommand must be created via NewResumeOrderCommand constructor",
)

// ResumeOrderCommand continues held work with the same technician and
// the same assignment.
type ResumeOrderCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewResumeOrderCommand creates the command for orderID.
func NewResumeOrderCommand(orderID kernel.UUID) (ResumeOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ResumeOrderCommand{}, err
	}

	return ResumeOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ResumeOrderCommand) Validate() error {
	return c.guard.Validate(ErrResumeOrderCommandIsNotConstructed)
}

// OrderID returns the target order.
func (c ResumeOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
