package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrReassignOrderCommandIsNotConstructed = errors.New(
	"ReassignOrderCommand must be created via NewReassignOrderCommand constructor",
)

// ReassignOrderCommand is the dispatcher override that gives an order to a chosen
// technician regardless of capacity and cooldown.
type ReassignOrderCommand struct {
	orderID      kernel.UUID
	technicianID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReassignOrderCommand validates both identifiers.
func NewReassignOrderCommand(orderID, technicianID kernel.UUID) (ReassignOrderCommand, error) {
	var technicianErr error
	if err := technicianID.Validate(); err != nil {
		technicianErr = errs.NewValueIsRequiredErrorWithCause("technicianId", err)
	}

	if err := errors.Join(orderID.Validate(), technicianErr); err != nil {
		return ReassignOrderCommand{}, err
	}

	return ReassignOrderCommand{
		orderID:      orderID,
		technicianID: technicianID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReassignOrderCommand) Validate() error {
	return c.guard.Validate(ErrReassignOrderCommandIsNotConstructed)
}

func (c ReassignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ReassignOrderCommand) TechnicianID() kernel.UUID {
	return c.technicianID
}
