package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRequestNextOrderCommandIsNotConstructed = errors.New(
	"RequestNextOrderCommand must be created via NewRequestNextOrderCommand constructor",
)

// RequestNextOrderCommand is a technician asking for the next order of their
// dealership queue.
//
// Example:
//
//	cmd, err := NewRequestNextOrderCommand(technicianID)
//	if err != nil {
//	    return err
//	}
//	claimed, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrCooldownActive):
//	    // ask again in a few minutes
//	case errors.Is(err, errs.ErrNoMatchingOrder):
//	    // everything queued is above this technician's skill
//	}
type RequestNextOrderCommand struct {
	technicianID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequestNextOrderCommand creates the command for technicianID.
func NewRequestNextOrderCommand(technicianID kernel.UUID) (RequestNextOrderCommand, error) {
	if err := technicianID.Validate(); err != nil {
		return RequestNextOrderCommand{}, err
	}

	return RequestNextOrderCommand{
		technicianID: technicianID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestNextOrderCommand) Validate() error {
	return c.guard.Validate(ErrRequestNextOrderCommandIsNotConstructed)
}

func (c RequestNextOrderCommand) TechnicianID() kernel.UUID {
	return c.technicianID
}
