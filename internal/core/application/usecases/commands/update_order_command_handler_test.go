package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdatePriorityCommandHandler_Handle(t *testing.T) {
	t.Run("should change priority of pending order", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		o := newPendingOrder(t, kernel.NewUUID())
		cmd, err := commands.NewUpdatePriorityCommand(o.ID(), 3)
		require.NoError(t, err)

		f.expectTx()
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		f.orders.On("ConditionalUpdate", ctx, o, order.Pending).Return(nil).Once()
		f.expectCommit()

		updated, err := commands.NewUpdatePriorityCommandHandler(f.orderOnly).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.PriorityLoaner, updated.Priority())
		f.assertExpectations(t)
	})

	t.Run("non-pending at read time is an invalid transition", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		o := newClaimedOrder(t, kernel.NewUUID(), kernel.NewUUID())
		cmd, _ := commands.NewUpdatePriorityCommand(o.ID(), 3)

		f.expectTx()
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()

		_, err := commands.NewUpdatePriorityCommandHandler(f.orderOnly).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		f.orders.AssertNotCalled(t, "ConditionalUpdate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("claimed before the write is a conflict", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		o := newPendingOrder(t, kernel.NewUUID())
		cmd, _ := commands.NewUpdatePriorityCommand(o.ID(), 2)

		f.expectTx()
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		f.orders.On("ConditionalUpdate", ctx, o, order.Pending).
			Return(errs.NewConflictError("repairOrder", o.ID().String())).Once()

		_, err := commands.NewUpdatePriorityCommandHandler(f.orderOnly).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("invalid priority is rejected by the command", func(t *testing.T) {
		_, err := commands.NewUpdatePriorityCommand(kernel.NewUUID(), 4)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestUpdateDifficultyCommandHandler_Handle(t *testing.T) {
	t.Run("should change difficulty of pending order", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		o := newPendingOrder(t, kernel.NewUUID())
		cmd, err := commands.NewUpdateDifficultyCommand(o.ID(), 3)
		require.NoError(t, err)

		f.expectTx()
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		f.orders.On("ConditionalUpdate", ctx, o, order.Pending).Return(nil).Once()
		f.expectCommit()

		updated, err := commands.NewUpdateDifficultyCommandHandler(f.orderOnly).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.MaxDifficulty, updated.Difficulty())
		f.assertExpectations(t)
	})

	t.Run("held order cannot be re-rated", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		o := newClaimedOrder(t, kernel.NewUUID(), kernel.NewUUID())
		require.NoError(t, o.PutOnHold("parts"))
		cmd, _ := commands.NewUpdateDifficultyCommand(o.ID(), 2)

		f.expectTx()
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()

		_, err := commands.NewUpdateDifficultyCommandHandler(f.orderOnly).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("invalid difficulty is rejected by the command", func(t *testing.T) {
		_, err := commands.NewUpdateDifficultyCommand(kernel.NewUUID(), 0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
