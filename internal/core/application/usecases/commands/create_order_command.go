package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to put a new repair order into a
// dealership queue.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), dealershipID, "RO-10442", "brake noise", 1, 0)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	dealershipID kernel.UUID
	description  string
	detail       string
	priority     order.PriorityClass
	difficulty   order.DifficultyLevel

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the input of a new order. A difficulty of 0
// means order.DefaultDifficulty.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	dealershipID kernel.UUID,
	description string,
	detail string,
	priority int,
	difficulty int,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		detail: detail,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDealershipID(dealershipID),
		cmd.setDescription(description),
		cmd.setPriority(priority),
		cmd.setDifficulty(difficulty),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) DealershipID() kernel.UUID {
	return c.dealershipID
}

func (c CreateOrderCommand) Description() string {
	return c.description
}

func (c CreateOrderCommand) Detail() string {
	return c.detail
}

func (c CreateOrderCommand) Priority() order.PriorityClass {
	return c.priority
}

func (c CreateOrderCommand) Difficulty() order.DifficultyLevel {
	return c.difficulty
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setDealershipID(dealershipID kernel.UUID) error {
	if err := dealershipID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("dealershipId", err)
	}
	c.dealershipID = dealershipID
	return nil
}

func (c *CreateOrderCommand) setDescription(description string) error {
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	c.description = description
	return nil
}

func (c *CreateOrderCommand) setPriority(priority int) error {
	p, err := order.NewPriorityClass(priority)
	if err != nil {
		return err
	}
	c.priority = p
	return nil
}

func (c *CreateOrderCommand) setDifficulty(difficulty int) error {
	if difficulty == 0 {
		c.difficulty = order.DefaultDifficulty
		return nil
	}
	d, err := order.NewDifficultyLevel(difficulty)
	if err != nil {
		return err
	}
	c.difficulty = d
	return nil
}
