package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrTechnicianOfOtherDealership is returned when a dispatcher picks a technician
	// who does not work at the order's dealership.
	ErrTechnicianOfOtherDealership = errs.NewValueIsInvalidErrorWithCause(
		"technicianId", errors.New("technician belongs to another dealership"))

	// ErrTechnicianSkillTooLow is returned when the skill check is enforced on
	// reassignment and the order is harder than the technician's skill.
	ErrTechnicianSkillTooLow = errs.NewValueIsInvalidErrorWithCause(
		"technicianId", errors.New("order difficulty exceeds technician skill"))
)

// ReassignOrderCommandHandler forces an order onto a technician.
//
// Business rules:
//   - The order must be pending or in progress
//   - The technician must exist and work at the order's dealership
//   - Capacity and cooldown are not checked
//   - The skill filter applies only when enforceSkill is set
//   - The previous open assignment, if any, is abandoned and a new one opened
//
// Example:
//
//	handler := NewReassignOrderCommandHandler(uowFactory, directory, kernel.SystemClock{}, false)
//	cmd, _ := NewReassignOrderCommand(orderID, technicianID)
//	reassigned, err := handler.Handle(ctx, cmd)
type ReassignOrderCommandHandler struct {
	uowFactory   UoWFactory
	directory    ports.TechnicianDirectory
	clock        kernel.Clock
	enforceSkill bool
}

// NewReassignOrderCommandHandler creates a handler for dispatcher reassignment.
func NewReassignOrderCommandHandler(
	uowFactory UoWFactory,
	directory ports.TechnicianDirectory,
	clock kernel.Clock,
	enforceSkill bool,
) ReassignOrderCommandHandler {
	return ReassignOrderCommandHandler{
		uowFactory:   uowFactory,
		directory:    directory,
		clock:        clock,
		enforceSkill: enforceSkill,
	}
}

// Handle assigns the order to the command's technician.
func (h ReassignOrderCommandHandler) Handle(ctx context.Context, cmd ReassignOrderCommand) (*order.RepairOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	tech, err := h.directory.Get(ctx, cmd.TechnicianID())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock.Now()

	reassigned, err := transitionOrder(ctx, uow.OrderRepository(), cmd.OrderID(), func(o *order.RepairOrder) error {
		if !tech.WorksAt(o.DealershipID()) {
			return ErrTechnicianOfOtherDealership
		}
		if h.enforceSkill && !tech.CanHandle(o.Difficulty()) {
			return ErrTechnicianSkillTooLow
		}
		return o.ForceAssign(tech.ID(), now)
	})
	if err != nil {
		return nil, err
	}

	assignmentRepo := uow.AssignmentRepository()

	err = closeOpenAssignment(ctx, assignmentRepo, reassigned.ID(), func(a *assignment.Assignment) error {
		return a.Abandon(now)
	})
	if err != nil {
		return nil, err
	}

	opened, err := assignment.NewAssignment(kernel.NewUUID(), reassigned.ID(), tech.ID(), now)
	if err != nil {
		return nil, err
	}

	if err = assignmentRepo.Insert(ctx, opened); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return reassigned, nil
}
