package assignment

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrAssignmentIsNotConstructed is returned when using an improperly initialized Assignment.
var ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")

// Assignment is one technician's stint on a repair order.
//
// Business rules:
//   - A new assignment is always InProgress
//   - Only an InProgress assignment can be closed, as Completed or Abandoned
//   - completedAt is set iff Completed, abandonedAt is set iff Abandoned
//
// Example usage:
//
//	a, err := assignment.NewAssignment(kernel.NewUUID(), orderID, technicianID, clock.Now())
//	if err != nil {
//	    return err
//	}
//	_ = a.Complete(clock.Now())
type Assignment struct {
	id           kernel.UUID
	orderID      kernel.UUID
	technicianID kernel.UUID
	assignedAt   time.Time
	status       Status
	completedAt  *time.Time
	abandonedAt  *time.Time

	guard guard.ConstructorGuard
}

// NewAssignment opens an InProgress assignment of order to technician.
//
// Parameters:
//   - id: identifier of the record
//   - orderID: the repair order being worked on
//   - technicianID: the technician receiving the order
//   - assignedAt: the instant the order was given
//
// Returns:
//   - *Assignment: the open record
//   - error: joined validation errors
func NewAssignment(id, orderID, technicianID kernel.UUID, assignedAt time.Time) (*Assignment, error) {
	a := &Assignment{
		status: InProgress,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setIDs(id, orderID, technicianID),
		a.setAssignedAt(assignedAt),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAssignment rebuilds an assignment loaded from storage.
func RestoreAssignment(
	id, orderID, technicianID kernel.UUID,
	assignedAt time.Time,
	status Status,
	completedAt, abandonedAt *time.Time,
) (*Assignment, error) {
	a := &Assignment{
		status:      status,
		completedAt: completedAt,
		abandonedAt: abandonedAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setIDs(id, orderID, technicianID),
		a.setAssignedAt(assignedAt),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if (status == Completed) != (completedAt != nil) || (status == Abandoned) != (abandonedAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("assignment state is inconsistent",
			fmt.Errorf("status %s does not match its close timestamps", status))
	}

	return a, nil
}

// Validate checks if the Assignment was properly constructed.
func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

// ID returns the identifier of the record.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// OrderID returns the repair order the record belongs to.
func (a *Assignment) OrderID() kernel.UUID {
	return a.orderID
}

// TechnicianID returns the technician who held the order.
func (a *Assignment) TechnicianID() kernel.UUID {
	return a.technicianID
}

// AssignedAt returns when the technician received the order.
func (a *Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

// Status returns the current status of the record.
func (a *Assignment) Status() Status {
	return a.status
}

// CompletedAt returns the completion time, or nil unless Completed.
func (a *Assignment) CompletedAt() *time.Time {
	return copyTime(a.completedAt)
}

// AbandonedAt returns the time the order was taken away, or nil unless Abandoned.
func (a *Assignment) AbandonedAt() *time.Time {
	return copyTime(a.abandonedAt)
}

// IsOpen reports whether the record belongs to the current assignee.
func (a *Assignment) IsOpen() bool {
	return a.status == InProgress
}

// Complete closes the open record because the work was finished.
//
// Returns:
//   - error: InvalidTransitionError if the record is already closed
func (a *Assignment) Complete(at time.Time) error {
	if err := a.ensureOpen("complete"); err != nil {
		return err
	}
	a.status = Completed
	a.completedAt = &at
	return nil
}

// Abandon closes the open record because the order left this technician.
//
// Returns:
//   - error: InvalidTransitionError if the record is already closed
func (a *Assignment) Abandon(at time.Time) error {
	if err := a.ensureOpen("abandon"); err != nil {
		return err
	}
	a.status = Abandoned
	a.abandonedAt = &at
	return nil
}

func (a *Assignment) ensureOpen(action string) error {
	if !a.IsOpen() {
		return errs.NewInvalidTransitionError(a.status.String(), action)
	}
	return nil
}

func (a *Assignment) setIDs(id, orderID, technicianID kernel.UUID) error {
	if err := errors.Join(
		id.Validate(),
		wrapRequired("repairOrderId", orderID.Validate()),
		wrapRequired("technicianId", technicianID.Validate()),
	); err != nil {
		return err
	}
	a.id = id
	a.orderID = orderID
	a.technicianID = technicianID
	return nil
}

func (a *Assignment) setAssignedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("assignedAt")
	}
	a.assignedAt = at
	return nil
}

func wrapRequired(paramName string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsRequiredErrorWithCause(paramName, err)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
