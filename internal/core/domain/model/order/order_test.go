package order_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func newPendingOrder(t *testing.T) *order.RepairOrder {
	t.Helper()
	o, err := order.NewRepairOrder(kernel.NewUUID(), "RO-1001", "oil change", kernel.NewUUID(),
		order.PriorityWait, order.DefaultDifficulty, t0)
	require.NoError(t, err)
	return o
}

func newInProgressOrder(t *testing.T, technicianID kernel.UUID) *order.RepairOrder {
	t.Helper()
	o := newPendingOrder(t)
	require.NoError(t, o.Claim(technicianID, t0.Add(time.Minute)))
	return o
}

func TestNewRepairOrder(t *testing.T) {
	dealershipID := kernel.NewUUID()

	t.Run("should create pending order with defaults", func(t *testing.T) {
		id := kernel.NewUUID()

		o, err := order.NewRepairOrder(id, "  RO-1001 ", "brake noise", dealershipID,
			order.PriorityValet, order.DefaultDifficulty, t0)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, "RO-1001", o.Description())
		assert.Equal(t, "brake noise", o.Detail())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.PriorityValet, o.Priority())
		assert.Equal(t, order.MinDifficulty, o.Difficulty())
		assert.True(t, o.DealershipID().IsEqual(dealershipID))
		assert.Equal(t, t0, o.CreatedAt())
		assert.Nil(t, o.AssignedTo())
		assert.Nil(t, o.AssignedAt())
		assert.Nil(t, o.CompletedAt())
		assert.Nil(t, o.HoldReason())
		assert.Zero(t, o.Version())
	})

	t.Run("should join every validation error", func(t *testing.T) {
		o, err := order.NewRepairOrder(kernel.UUID{}, " ", "", kernel.UUID{}, 0, 7, time.Time{})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "description")
		assert.Contains(t, err.Error(), "dealershipId")
		assert.Contains(t, err.Error(), "priorityClass")
		assert.Contains(t, err.Error(), "difficultyLevel")
		assert.Contains(t, err.Error(), "createdAt")
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})
}

func TestRepairOrder_Validate(t *testing.T) {
	var zero order.RepairOrder
	var nilOrder *order.RepairOrder

	assert.Equal(t, order.ErrOrderIsNotConstructed, zero.Validate())
	assert.Equal(t, order.ErrOrderIsNotConstructed, nilOrder.Validate())
}

func TestRepairOrder_Claim(t *testing.T) {
	technicianID := kernel.NewUUID()

	t.Run("should assign pending order", func(t *testing.T) {
		o := newPendingOrder(t)
		at := t0.Add(5 * time.Minute)

		require.NoError(t, o.Claim(technicianID, at))

		assert.Equal(t, order.InProgress, o.Status())
		assert.True(t, o.IsAssignedTo(technicianID))
		assert.Equal(t, at, *o.AssignedAt())
	})

	t.Run("should reject claim of assigned order", func(t *testing.T) {
		o := newInProgressOrder(t, technicianID)

		err := o.Claim(kernel.NewUUID(), t0)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.True(t, o.IsAssignedTo(technicianID))
	})

	t.Run("should reject invalid technician", func(t *testing.T) {
		o := newPendingOrder(t)

		require.ErrorIs(t, o.Claim(kernel.UUID{}, t0), kernel.ErrUUIDIsNotConstructed)
		assert.Equal(t, order.Pending, o.Status())
	})
}

func TestRepairOrder_Complete(t *testing.T) {
	t.Run("should complete in-progress order", func(t *testing.T) {
		o := newInProgressOrder(t, kernel.NewUUID())
		at := t0.Add(time.Hour)

		require.NoError(t, o.Complete(at))

		assert.Equal(t, order.Completed, o.Status())
		assert.Equal(t, at, *o.CompletedAt())
		assert.Nil(t, o.AssignedTo())
		assert.Nil(t, o.AssignedAt())
	})

	t.Run("should fail on non in-progress order and mutate nothing", func(t *testing.T) {
		pending := newPendingOrder(t)
		held := newInProgressOrder(t, kernel.NewUUID())
		require.NoError(t, held.PutOnHold("waiting for part"))

		for _, o := range []*order.RepairOrder{pending, held} {
			before := o.Snapshot()

			err := o.Complete(t0.Add(time.Hour))

			require.ErrorIs(t, err, errs.ErrInvalidTransition)
			assert.Equal(t, before, o.Snapshot())
		}
	})

	t.Run("completed is terminal", func(t *testing.T) {
		o := newInProgressOrder(t, kernel.NewUUID())
		require.NoError(t, o.Complete(t0))

		require.ErrorIs(t, o.Complete(t0), errs.ErrInvalidTransition)
		require.ErrorIs(t, o.ReturnToQueue(), errs.ErrInvalidTransition)
		require.ErrorIs(t, o.ForceAssign(kernel.NewUUID(), t0), errs.ErrInvalidTransition)
		require.ErrorIs(t, o.CanDelete(), errs.ErrInvalidTransition)
	})
}

func TestRepairOrder_HoldAndResume(t *testing.T) {
	technicianID := kernel.NewUUID()

	t.Run("should round trip hold and resume keeping the reason", func(t *testing.T) {
		o := newInProgressOrder(t, technicianID)

		require.NoError(t, o.PutOnHold("waiting for part"))
		assert.Equal(t, order.OnHold, o.Status())
		assert.True(t, o.IsAssignedTo(technicianID))

		require.NoError(t, o.Resume())

		assert.Equal(t, order.InProgress, o.Status())
		assert.True(t, o.IsAssignedTo(technicianID))
		require.NotNil(t, o.HoldReason())
		assert.Equal(t, "waiting for part", *o.HoldReason())
	})

	t.Run("should reject empty reason and keep status", func(t *testing.T) {
		for _, reason := range []string{"", "   "} {
			o := newInProgressOrder(t, technicianID)

			err := o.PutOnHold(reason)

			require.ErrorIs(t, err, errs.ErrValueIsRequired)
			assert.Equal(t, errs.KindValidation, errs.KindOf(err))
			assert.Equal(t, order.InProgress, o.Status())
			assert.Nil(t, o.HoldReason())
		}
	})

	t.Run("should reject hold of pending order", func(t *testing.T) {
		o := newPendingOrder(t)

		require.ErrorIs(t, o.PutOnHold("no lift"), errs.ErrInvalidTransition)
	})

	t.Run("should reject resume of in-progress order", func(t *testing.T) {
		o := newInProgressOrder(t, technicianID)

		require.ErrorIs(t, o.Resume(), errs.ErrInvalidTransition)
	})
}

func TestRepairOrder_ReturnToQueue(t *testing.T) {
	for _, hold := range []bool{false, true} {
		o := newInProgressOrder(t, kernel.NewUUID())
		if hold {
			require.NoError(t, o.PutOnHold("customer unreachable"))
		}

		require.NoError(t, o.ReturnToQueue())

		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.AssignedTo())
		assert.Nil(t, o.AssignedAt())
		assert.Nil(t, o.HoldReason())
	}

	require.ErrorIs(t, newPendingOrder(t).ReturnToQueue(), errs.ErrInvalidTransition)
}

func TestRepairOrder_ForceAssign(t *testing.T) {
	first := kernel.NewUUID()
	second := kernel.NewUUID()

	t.Run("should assign pending and reassign in-progress", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.ForceAssign(first, t0))
		require.NoError(t, o.ForceAssign(second, t0.Add(time.Minute)))

		assert.True(t, o.IsAssignedTo(second))
		assert.Equal(t, t0.Add(time.Minute), *o.AssignedAt())
	})

	t.Run("should reject the current assignee", func(t *testing.T) {
		o := newInProgressOrder(t, first)

		require.ErrorIs(t, o.ForceAssign(first, t0), errs.ErrValueIsInvalid)
	})

	t.Run("should reject held order", func(t *testing.T) {
		o := newInProgressOrder(t, first)
		require.NoError(t, o.PutOnHold("parts"))

		require.ErrorIs(t, o.ForceAssign(second, t0), errs.ErrInvalidTransition)
	})
}

func TestRepairOrder_Edits(t *testing.T) {
	t.Run("should edit pending order", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.ChangePriority(order.PriorityLoaner))
		require.NoError(t, o.ChangeDifficulty(3))
		require.NoError(t, o.MoveInQueue(t0.Add(-time.Minute)))

		assert.Equal(t, order.PriorityLoaner, o.Priority())
		assert.Equal(t, order.DifficultyLevel(3), o.Difficulty())
		assert.Equal(t, t0.Add(-time.Minute), o.CreatedAt())
	})

	t.Run("should reject invalid values", func(t *testing.T) {
		o := newPendingOrder(t)

		require.ErrorIs(t, o.ChangePriority(9), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, o.ChangeDifficulty(0), errs.ErrValueIsOutOfRange)
		assert.Equal(t, order.PriorityWait, o.Priority())
	})

	t.Run("should reject edits outside pending", func(t *testing.T) {
		o := newInProgressOrder(t, kernel.NewUUID())

		require.ErrorIs(t, o.ChangePriority(order.PriorityValet), errs.ErrInvalidTransition)
		require.ErrorIs(t, o.ChangeDifficulty(2), errs.ErrInvalidTransition)
		require.ErrorIs(t, o.MoveInQueue(t0), errs.ErrInvalidTransition)
		assert.Equal(t, order.PriorityWait, o.Priority())
	})
}

func TestRestoreRepairOrder(t *testing.T) {
	technicianID := kernel.NewUUID()

	t.Run("should restore from its own snapshot", func(t *testing.T) {
		o := newInProgressOrder(t, technicianID)
		require.NoError(t, o.PutOnHold("parts"))
		o.IncrementVersion()

		restored, err := order.RestoreRepairOrder(o.Snapshot())

		require.NoError(t, err)
		assert.Equal(t, o.Snapshot(), restored.Snapshot())
		assert.Equal(t, 1, restored.Version())
	})

	t.Run("should reject inconsistent state", func(t *testing.T) {
		reason := "parts"
		at := t0
		base := newPendingOrder(t).Snapshot()

		cases := map[string]func(s *order.Snapshot){
			"in progress without assignee": func(s *order.Snapshot) { s.Status = order.InProgress },
			"pending with assignee": func(s *order.Snapshot) {
				s.AssignedTo = &technicianID
				s.AssignedAt = &at
			},
			"completed without completedAt": func(s *order.Snapshot) { s.Status = order.Completed },
			"on hold without reason": func(s *order.Snapshot) {
				s.Status = order.OnHold
				s.AssignedTo = &technicianID
				s.AssignedAt = &at
			},
			"pending with hold reason": func(s *order.Snapshot) { s.HoldReason = &reason },
			"unknown status":           func(s *order.Snapshot) { s.Status = order.Unknown },
		}

		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				s := base
				mutate(&s)

				_, err := order.RestoreRepairOrder(s)

				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			})
		}
	})
}

func TestRepairOrder_AccessorsReturnCopies(t *testing.T) {
	technicianID := kernel.NewUUID()
	o := newInProgressOrder(t, technicianID)

	at := o.AssignedAt()
	*at = at.Add(time.Hour)

	assert.Equal(t, t0.Add(time.Minute), *o.AssignedAt())
}
