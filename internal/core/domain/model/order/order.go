package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when a RepairOrder was not created through
	// NewRepairOrder or RestoreRepairOrder.
	ErrOrderIsNotConstructed = errors.New("RepairOrder must be created via NewRepairOrder constructor")

	// ErrAlreadyAssignedToTechnician is returned when a forced reassignment targets
	// the technician who already owns the order.
	ErrAlreadyAssignedToTechnician = errs.NewValueIsInvalidErrorWithCause(
		"technicianId", errors.New("order is already assigned to this technician"))
)

// RepairOrder is the aggregate root of a shop work order. It moves through the
// lifecycle pending → in_progress → completed with an on_hold side path, and every
// change of status goes through the transition table in lifecycle.go.
//
// Invariants:
//   - assignedTo and assignedAt are set iff status is InProgress or OnHold
//   - completedAt is set iff status is Completed
//   - holdReason is set while OnHold; it survives resume and completion for audit
//     and is cleared only by return-to-queue
//   - priority, difficulty and queue position change only while Pending
//
// version is an optimistic concurrency token. Storage increments it on every
// successful conditional write.
type RepairOrder struct {
	id           kernel.UUID
	description  string
	detail       string
	status       Status
	priority     PriorityClass
	difficulty   DifficultyLevel
	dealershipID kernel.UUID
	createdAt    time.Time
	assignedTo   *kernel.UUID
	assignedAt   *time.Time
	completedAt  *time.Time
	holdReason   *string
	version      int

	guard guard.ConstructorGuard
}

// Snapshot is the full state of a RepairOrder, used to persist and restore it.
type Snapshot struct {
	ID           kernel.UUID
	Description  string
	Detail       string
	Status       Status
	Priority     PriorityClass
	Difficulty   DifficultyLevel
	DealershipID kernel.UUID
	CreatedAt    time.Time
	AssignedTo   *kernel.UUID
	AssignedAt   *time.Time
	CompletedAt  *time.Time
	HoldReason   *string
	Version      int
}

// NewRepairOrder creates a pending order. description is the shop ticket id and
// must not be blank.
//
// Example:
//
//	o, err := order.NewRepairOrder(kernel.NewUUID(), "RO-10442", "brake noise",
//	    dealershipID, order.PriorityWait, order.DefaultDifficulty, clock.Now())
func NewRepairOrder(
	id kernel.UUID,
	description string,
	detail string,
	dealershipID kernel.UUID,
	priority PriorityClass,
	difficulty DifficultyLevel,
	createdAt time.Time,
) (*RepairOrder, error) {
	o := &RepairOrder{
		status: Pending,
		detail: detail,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setDescription(description),
		o.setDealershipID(dealershipID),
		o.setPriority(priority),
		o.setDifficulty(difficulty),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreRepairOrder rebuilds an order from storage and checks every invariant,
// so a corrupt row is reported instead of silently loaded.
func RestoreRepairOrder(s Snapshot) (*RepairOrder, error) {
	o := &RepairOrder{
		detail:      s.Detail,
		assignedTo:  copyUUID(s.AssignedTo),
		assignedAt:  copyTime(s.AssignedAt),
		completedAt: copyTime(s.CompletedAt),
		holdReason:  copyString(s.HoldReason),
		version:     s.Version,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setDescription(s.Description),
		o.setDealershipID(s.DealershipID),
		o.setPriority(s.Priority),
		o.setDifficulty(s.Difficulty),
		o.setCreatedAt(s.CreatedAt),
		o.setStatus(s.Status),
	); err != nil {
		return nil, err
	}

	if err := o.checkInvariants(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the RepairOrder was built by a constructor.
func (o *RepairOrder) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identity.
func (o *RepairOrder) IsEqual(other *RepairOrder) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *RepairOrder) ID() kernel.UUID { return o.id }
func (o *RepairOrder) Description() string { return o.description }
func (o *RepairOrder) Detail() string { return o.detail }
func (o *RepairOrder) Status() Status { return o.status }
func (o *RepairOrder) Priority() PriorityClass { return o.priority }
func (o *RepairOrder) Difficulty() DifficultyLevel { return o.difficulty }
func (o *RepairOrder) DealershipID() kernel.UUID { return o.dealershipID }
func (o *RepairOrder) CreatedAt() time.Time { return o.createdAt }
func (o *RepairOrder) AssignedTo() *kernel.UUID { return copyUUID(o.assignedTo) }
func (o *RepairOrder) AssignedAt() *time.Time { return copyTime(o.assignedAt) }
func (o *RepairOrder) CompletedAt() *time.Time { return copyTime(o.completedAt) }
func (o *RepairOrder) HoldReason() *string { return copyString(o.holdReason) }
func (o *RepairOrder) Version() int { return o.version }
func (o *RepairOrder) IsAssignedTo(id kernel.UUID) bool { return o.assignedTo != nil && o.assignedTo.IsEqual(id) }

// Snapshot returns a copy of the full state.
func (o *RepairOrder) Snapshot() Snapshot {
	return Snapshot{
		ID:           o.id,
		Description:  o.description,
		Detail:       o.detail,
		Status:       o.status,
		Priority:     o.priority,
		Difficulty:   o.difficulty,
		DealershipID: o.dealershipID,
		CreatedAt:    o.createdAt,
		AssignedTo:   copyUUID(o.assignedTo),
		AssignedAt:   copyTime(o.assignedAt),
		CompletedAt:  copyTime(o.completedAt),
		HoldReason:   copyString(o.holdReason),
		Version:      o.version,
	}
}

// IncrementVersion is called by storage after a successful conditional write.
func (o *RepairOrder) IncrementVersion() {
	o.version++
}

// Claim gives a pending order to technicianID at the given instant. Eligibility is
// the caller's concern; Claim only enforces the lifecycle.
func (o *RepairOrder) Claim(technicianID kernel.UUID, at time.Time) error {
	if err := technicianID.Validate(); err != nil {
		return err
	}
	next, err := o.status.Next(ActionClaim)
	if err != nil {
		return err
	}
	o.assign(next, technicianID, at)
	return nil
}

// ForceAssign moves a pending or in-progress order to technicianID. It is the
// dispatcher override and bypasses every eligibility rule.
func (o *RepairOrder) ForceAssign(technicianID kernel.UUID, at time.Time) error {
	if err := technicianID.Validate(); err != nil {
		return err
	}
	next, err := o.status.Next(ActionForceAssign)
	if err != nil {
		return err
	}
	if o.IsAssignedTo(technicianID) {
		return ErrAlreadyAssignedToTechnician
	}
	o.assign(next, technicianID, at)
	return nil
}

// Complete finishes in-progress work. The assignee is released and completedAt set;
// who did the work stays recorded on the Assignment.
func (o *RepairOrder) Complete(at time.Time) error {
	next, err := o.status.Next(ActionComplete)
	if err != nil {
		return err
	}
	o.status = next
	o.assignedTo = nil
	o.assignedAt = nil
	o.completedAt = &at
	return nil
}

// PutOnHold pauses in-progress work. reason must not be blank.
func (o *RepairOrder) PutOnHold(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("holdReason")
	}
	next, err := o.status.Next(ActionHold)
	if err != nil {
		return err
	}
	o.status = next
	o.holdReason = &reason
	return nil
}

// Resume continues held work with the same assignee. The hold reason is kept.
func (o *RepairOrder) Resume() error {
	next, err := o.status.Next(ActionResume)
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// ReturnToQueue puts an assigned order back into the pending queue.
func (o *RepairOrder) ReturnToQueue() error {
	next, err := o.status.Next(ActionReturnToQueue)
	if err != nil {
		return err
	}
	o.status = next
	o.assignedTo = nil
	o.assignedAt = nil
	o.holdReason = nil
	return nil
}

// CanDelete reports, as an error, whether the order may be removed.
func (o *RepairOrder) CanDelete() error {
	_, err := o.status.Next(ActionDelete)
	return err
}

// ChangePriority moves a pending order into another priority bucket.
func (o *RepairOrder) ChangePriority(priority PriorityClass) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	return o.setPriority(priority)
}

// ChangeDifficulty re-rates a pending order.
func (o *RepairOrder) ChangeDifficulty(difficulty DifficultyLevel) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	return o.setDifficulty(difficulty)
}

// MoveInQueue changes the ordering timestamp of a pending order. It is how manual
// reordering is expressed; see services.QueueRanker.
func (o *RepairOrder) MoveInQueue(createdAt time.Time) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	return o.setCreatedAt(createdAt)
}

func (o *RepairOrder) ensureEditable() error {
	_, err := o.status.Next(ActionEdit)
	return err
}

func (o *RepairOrder) assign(next Status, technicianID kernel.UUID, at time.Time) {
	o.status = next
	o.assignedTo = &technicianID
	o.assignedAt = &at
}

func (o *RepairOrder) checkInvariants() error {
	var problems []error

	if o.status.HasAssignee() != (o.assignedTo != nil) {
		problems = append(problems, fmt.Errorf("status %s and assignee presence disagree", o.status))
	}
	if (o.assignedTo != nil) != (o.assignedAt != nil) {
		problems = append(problems, errors.New("assignedTo and assignedAt must be set together"))
	}
	if (o.status == Completed) != (o.completedAt != nil) {
		problems = append(problems, fmt.Errorf("status %s and completedAt presence disagree", o.status))
	}
	if o.status == OnHold && o.holdReason == nil {
		problems = append(problems, errors.New("on_hold order has no hold reason"))
	}
	if o.status == Pending && o.holdReason != nil {
		problems = append(problems, errors.New("pending order carries a hold reason"))
	}

	if len(problems) > 0 {
		return errs.NewValueIsInvalidErrorWithCause("repair order state is inconsistent", errors.Join(problems...))
	}
	return nil
}

func (o *RepairOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *RepairOrder) setDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	o.description = description
	return nil
}

func (o *RepairOrder) setDealershipID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("dealershipId", err)
	}
	o.dealershipID = id
	return nil
}

func (o *RepairOrder) setPriority(priority PriorityClass) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	o.priority = priority
	return nil
}

func (o *RepairOrder) setDifficulty(difficulty DifficultyLevel) error {
	if err := difficulty.Validate(); err != nil {
		return err
	}
	o.difficulty = difficulty
	return nil
}

func (o *RepairOrder) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}

func (o *RepairOrder) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func copyUUID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
