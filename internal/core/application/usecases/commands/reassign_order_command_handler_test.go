package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReassignOrderCommandHandler_Handle_InProgress(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	directory := new(MockTechnicianDirectory)
	dealershipID := kernel.NewUUID()
	previous := kernel.NewUUID()
	o := newClaimedOrder(t, dealershipID, previous)
	open := newOpenAssignment(t, o)
	tech := newTech(t, dealershipID, 1)
	cmd, err := commands.NewReassignOrderCommand(o.ID(), tech.ID())
	require.NoError(t, err)

	directory.On("Get", ctx, tech.ID()).Return(tech, nil).Once()
	f.expectTx()
	f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	f.orders.On("ConditionalUpdate", ctx, o, order.InProgress).Return(nil).Once()
	f.assignments.On("GetOpenByOrder", ctx, o.ID()).Return(open, nil).Once()
	f.assignments.On("Update", ctx, open).Return(nil).Once()
	f.assignments.On("Insert", ctx, mock.MatchedBy(func(a *assignment.Assignment) bool {
		return a.TechnicianID().IsEqual(tech.ID()) && a.IsOpen() && a.AssignedAt().Equal(now)
	})).Return(nil).Once()
	f.expectCommit()

	h := commands.NewReassignOrderCommandHandler(f.factory, directory, f.clock, false)
	reassigned, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.InProgress, reassigned.Status())
	assert.True(t, reassigned.IsAssignedTo(tech.ID()))
	assert.Equal(t, now, *reassigned.AssignedAt())
	assert.Equal(t, assignment.Abandoned, open.Status())
	f.assertExpectations(t)
	directory.AssertExpectations(t)
}

func TestReassignOrderCommandHandler_Handle_PendingHasNoPreviousAssignment(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	directory := new(MockTechnicianDirectory)
	dealershipID := kernel.NewUUID()
	o := newPendingOrder(t, dealershipID)
	tech := newTech(t, dealershipID, 1)
	cmd, _ := commands.NewReassignOrderCommand(o.ID(), tech.ID())

	directory.On("Get", ctx, tech.ID()).Return(tech, nil).Once()
	f.expectTx()
	f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	f.orders.On("ConditionalUpdate", ctx, o, order.Pending).Return(nil).Once()
	f.assignments.On("GetOpenByOrder", ctx, o.ID()).
		Return(nil, errs.NewObjectNotFoundError("assignment", o.ID().String())).Once()
	f.assignments.On("Insert", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once()
	f.expectCommit()

	h := commands.NewReassignOrderCommandHandler(f.factory, directory, f.clock, false)
	reassigned, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, reassigned.IsAssignedTo(tech.ID()))
	f.assertExpectations(t)
}

func TestReassignOrderCommandHandler_Handle_Rejections(t *testing.T) {
	dealershipID := kernel.NewUUID()

	tests := []struct {
		name         string
		order        func(t *testing.T) *order.RepairOrder
		techDealer   kernel.UUID
		enforceSkill bool
		sameTech     bool
		wantErr      error
	}{
		{
			name:       "technician of another dealership",
			order:      func(t *testing.T) *order.RepairOrder { return newPendingOrder(t, dealershipID) },
			techDealer: kernel.NewUUID(),
			wantErr:    commands.ErrTechnicianOfOtherDealership,
		},
		{
			name: "skill enforced",
			order: func(t *testing.T) *order.RepairOrder {
				o := newPendingOrder(t, dealershipID)
				require.NoError(t, o.ChangeDifficulty(order.MaxDifficulty))
				return o
			},
			techDealer:   dealershipID,
			enforceSkill: true,
			wantErr:      commands.ErrTechnicianSkillTooLow,
		},
		{
			name: "held order",
			order: func(t *testing.T) *order.RepairOrder {
				o := newClaimedOrder(t, dealershipID, kernel.NewUUID())
				require.NoError(t, o.PutOnHold("parts"))
				return o
			},
			techDealer: dealershipID,
			wantErr:    errs.ErrInvalidTransition,
		},
		{
			name:       "current assignee",
			order:      func(t *testing.T) *order.RepairOrder { return newPendingOrder(t, dealershipID) },
			techDealer: dealershipID,
			sameTech:   true,
			wantErr:    order.ErrAlreadyAssignedToTechnician,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			f := newFixture()
			directory := new(MockTechnicianDirectory)
			o := tt.order(t)
			tech := newTech(t, tt.techDealer, 1)
			if tt.sameTech {
				require.NoError(t, o.Claim(tech.ID(), now.Add(-10*time.Minute)))
			}
			before := o.Snapshot()
			cmd, _ := commands.NewReassignOrderCommand(o.ID(), tech.ID())

			directory.On("Get", ctx, tech.ID()).Return(tech, nil).Once()
			f.expectTx()
			f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()

			h := commands.NewReassignOrderCommandHandler(f.factory, directory, f.clock, tt.enforceSkill)
			_, err := h.Handle(ctx, cmd)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, o.Snapshot())
			f.orders.AssertNotCalled(t, "ConditionalUpdate", mock.Anything, mock.Anything, mock.Anything)
			f.assignments.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		})
	}
}

func TestReassignOrderCommandHandler_Handle_UnknownTechnician(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	directory := new(MockTechnicianDirectory)
	techID := kernel.NewUUID()
	cmd, _ := commands.NewReassignOrderCommand(kernel.NewUUID(), techID)

	directory.On("Get", ctx, techID).Return(nil, errs.NewObjectNotFoundError("technicianId", techID.String())).Once()

	h := commands.NewReassignOrderCommandHandler(f.factory, directory, f.clock, false)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.factory.AssertNotCalled(t, "Create")
}
