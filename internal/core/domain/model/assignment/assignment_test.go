package assignment_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var assignedAt = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newOpen(t *testing.T) *assignment.Assignment {
	t.Helper()
	a, err := assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), assignedAt)
	require.NoError(t, err)
	return a
}

func TestNewAssignment(t *testing.T) {
	t.Run("should open in-progress record", func(t *testing.T) {
		orderID := kernel.NewUUID()
		technicianID := kernel.NewUUID()

		a, err := assignment.NewAssignment(kernel.NewUUID(), orderID, technicianID, assignedAt)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.True(t, a.OrderID().IsEqual(orderID))
		assert.True(t, a.TechnicianID().IsEqual(technicianID))
		assert.Equal(t, assignedAt, a.AssignedAt())
		assert.Equal(t, assignment.InProgress, a.Status())
		assert.True(t, a.IsOpen())
		assert.Nil(t, a.CompletedAt())
		assert.Nil(t, a.AbandonedAt())
	})

	t.Run("should reject missing values", func(t *testing.T) {
		a, err := assignment.NewAssignment(kernel.UUID{}, kernel.UUID{}, kernel.UUID{}, time.Time{})

		assert.Nil(t, a)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "repairOrderId")
		assert.Contains(t, err.Error(), "technicianId")
		assert.Contains(t, err.Error(), "assignedAt")
	})
}

func TestAssignment_Close(t *testing.T) {
	closedAt := assignedAt.Add(time.Hour)

	t.Run("complete", func(t *testing.T) {
		a := newOpen(t)

		require.NoError(t, a.Complete(closedAt))

		assert.Equal(t, assignment.Completed, a.Status())
		assert.Equal(t, closedAt, *a.CompletedAt())
		assert.False(t, a.IsOpen())
		require.ErrorIs(t, a.Abandon(closedAt), errs.ErrInvalidTransition)
	})

	t.Run("abandon", func(t *testing.T) {
		a := newOpen(t)

		require.NoError(t, a.Abandon(closedAt))

		assert.Equal(t, assignment.Abandoned, a.Status())
		assert.Equal(t, closedAt, *a.AbandonedAt())
		assert.Nil(t, a.CompletedAt())
		require.ErrorIs(t, a.Complete(closedAt), errs.ErrInvalidTransition)
	})
}

func TestRestoreAssignment(t *testing.T) {
	closedAt := assignedAt.Add(time.Hour)
	id, orderID, technicianID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	t.Run("should restore closed record", func(t *testing.T) {
		a, err := assignment.RestoreAssignment(id, orderID, technicianID, assignedAt,
			assignment.Abandoned, nil, &closedAt)

		require.NoError(t, err)
		assert.Equal(t, assignment.Abandoned, a.Status())
		assert.True(t, a.ID().IsEqual(id))
	})

	t.Run("should reject inconsistent timestamps", func(t *testing.T) {
		_, err := assignment.RestoreAssignment(id, orderID, technicianID, assignedAt,
			assignment.Completed, nil, nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = assignment.RestoreAssignment(id, orderID, technicianID, assignedAt,
			assignment.InProgress, &closedAt, nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := assignment.RestoreAssignment(id, orderID, technicianID, assignedAt,
			assignment.Unknown, nil, nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_Parse(t *testing.T) {
	for _, s := range []assignment.Status{assignment.InProgress, assignment.Completed, assignment.Abandoned} {
		parsed, err := assignment.ParseStatus(s.String())

		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := assignment.ParseStatus("lost")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestAssignment_Validate(t *testing.T) {
	var a assignment.Assignment

	assert.Equal(t, assignment.ErrAssignmentIsNotConstructed, a.Validate())
}
