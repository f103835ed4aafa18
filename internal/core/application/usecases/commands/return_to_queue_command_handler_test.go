package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturnToQueueCommandHandler_Handle(t *testing.T) {
	t.Run("should release held order and abandon its assignment", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		o := newClaimedOrder(t, kernel.NewUUID(), kernel.NewUUID())
		open := newOpenAssignment(t, o)
		require.NoError(t, o.PutOnHold("customer unreachable"))
		createdAt := o.CreatedAt()
		cmd, err := commands.NewReturnToQueueCommand(o.ID())
		require.NoError(t, err)

		f.expectTx()
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		f.orders.On("ConditionalUpdate", ctx, o, order.OnHold).Return(nil).Once()
		f.assignments.On("GetOpenByOrder", ctx, o.ID()).Return(open, nil).Once()
		f.assignments.On("Update", ctx, open).Return(nil).Once()
		f.expectCommit()

		returned, err := commands.NewReturnToQueueCommandHandler(f.factory, f.clock).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Pending, returned.Status())
		assert.Nil(t, returned.AssignedTo())
		assert.Nil(t, returned.HoldReason())
		assert.Equal(t, createdAt, returned.CreatedAt())
		assert.Equal(t, assignment.Abandoned, open.Status())
		assert.Equal(t, now, *open.AbandonedAt())
		f.assertExpectations(t)
	})

	t.Run("should refuse pending order", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		o := newPendingOrder(t, kernel.NewUUID())
		cmd, _ := commands.NewReturnToQueueCommand(o.ID())

		f.expectTx()
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()

		_, err := commands.NewReturnToQueueCommandHandler(f.factory, f.clock).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}
