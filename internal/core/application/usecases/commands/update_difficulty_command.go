package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateDifficultyCommandIsNotConstructed = errors.New(
	"UpdateDifficultyCommand must be created via NewUpdateDifficultyCommand constructor",
)

// UpdateDifficultyCommand re-rates the difficulty of a pending order.
type UpdateDifficultyCommand struct {
	orderID    kernel.UUID
	difficulty order.DifficultyLevel

	guard guard.ConstructorGuard
}

// NewUpdateDifficultyCommand validates the target and the new difficulty level.
func NewUpdateDifficultyCommand(orderID kernel.UUID, difficulty int) (UpdateDifficultyCommand, error) {
	d, difficultyErr := order.NewDifficultyLevel(difficulty)
	if err := errors.Join(orderID.Validate(), difficultyErr); err != nil {
		return UpdateDifficultyCommand{}, err
	}

	return UpdateDifficultyCommand{
		orderID:    orderID,
		difficulty: d,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDifficultyCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDifficultyCommandIsNotConstructed)
}

func (c UpdateDifficultyCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateDifficultyCommand) Difficulty() order.DifficultyLevel {
	return c.difficulty
}
