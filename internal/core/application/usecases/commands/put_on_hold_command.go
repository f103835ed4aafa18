package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrPutOnHoldCommandIsNotConstructed = errors.New(
	"PutOnHoldCommand must be created via NewPutOnHoldCommand constructor",
)

// PutOnHoldCommand pauses in-progress work. The reason is mandatory and shown to
// dispatchers while the order waits.
type PutOnHoldCommand struct {
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewPutOnHoldCommand validates the target and the hold reason.
func NewPutOnHoldCommand(orderID kernel.UUID, reason string) (PutOnHoldCommand, error) {
	var reasonErr error
	if strings.TrimSpace(reason) == "" {
		reasonErr = errs.NewValueIsRequiredError("holdReason")
	}

	if err := errors.Join(orderID.Validate(), reasonErr); err != nil {
		return PutOnHoldCommand{}, err
	}

	return PutOnHoldCommand{
		orderID: orderID,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PutOnHoldCommand) Validate() error {
	return c.guard.Validate(ErrPutOnHoldCommandIsNotConstructed)
}

func (c PutOnHoldCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c PutOnHoldCommand) Reason() string {
	return c.reason
}
