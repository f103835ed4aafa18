package memory

import (
	"cmp"
	"context"
	"slices"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var _ ports.AssignmentRepository = (*AssignmentRepository)(nil)

// AssignmentRepository stores the assignment trail of a Store. An order has at
// most one open record, mirroring the partial unique index of the postgres schema.
type AssignmentRepository struct {
	store *Store
	tx    *state
}

func newAssignmentRepository(store *Store, tx *state) *AssignmentRepository {
	return &AssignmentRepository{store: store, tx: tx}
}

func (r *AssignmentRepository) run(ctx context.Context, fn func(st *state) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	return r.store.withLock(ctx, fn)
}

func (r *AssignmentRepository) Insert(ctx context.Context, a *assignment.Assignment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	return r.run(ctx, func(st *state) error {
		if _, ok := st.orders[a.OrderID()]; !ok {
			return errs.NewObjectNotFoundError("repairOrder", a.OrderID().String())
		}
		if _, ok := st.assignments[a.ID()]; ok {
			return errs.NewConflictError("assignment", a.ID().String())
		}
		if a.IsOpen() {
			if _, open := openRecord(st, a.OrderID()); open {
				return errs.NewConflictError("assignment", a.OrderID().String())
			}
		}
		st.nextSeq++
		st.assignments[a.ID()] = toRecord(a, st.nextSeq)
		return nil
	})
}

// Update persists the close of an open record. Closing a record that is no
// longer open in the store is a conflict.
func (r *AssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	return r.run(ctx, func(st *state) error {
		stored, ok := st.assignments[a.ID()]
		if !ok {
			return errs.NewObjectNotFoundError("assignment", a.ID().String())
		}
		if stored.status != assignment.InProgress {
			return errs.NewConflictError("assignment", a.ID().String())
		}
		st.assignments[a.ID()] = toRecord(a, stored.seq)
		return nil
	})
}

func (r *AssignmentRepository) GetOpenByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error) {
	var found *assignment.Assignment
	err := r.run(ctx, func(st *state) error {
		rec, ok := openRecord(st, orderID)
		if !ok {
			return errs.NewObjectNotFoundError("assignment", orderID.String())
		}
		a, err := rec.restore()
		found = a
		return err
	})
	return found, err
}

func (r *AssignmentRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*assignment.Assignment, error) {
	var records []assignmentRecord
	err := r.run(ctx, func(st *state) error {
		for _, rec := range st.assignments {
			if rec.orderID.IsEqual(orderID) {
				records = append(records, rec)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(records, func(a, b assignmentRecord) int {
		if c := a.assignedAt.Compare(b.assignedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})

	trail := make([]*assignment.Assignment, 0, len(records))
	for _, rec := range records {
		a, restoreErr := rec.restore()
		if restoreErr != nil {
			return nil, restoreErr
		}
		trail = append(trail, a)
	}
	return trail, nil
}

func openRecord(st *state, orderID kernel.UUID) (assignmentRecord, bool) {
	for _, rec := range st.assignments {
		if rec.orderID.IsEqual(orderID) && rec.status == assignment.InProgress {
			return rec, true
		}
	}
	return assignmentRecord{}, false
}

func toRecord(a *assignment.Assignment, seq int) assignmentRecord {
	return assignmentRecord{
		id:           a.ID(),
		orderID:      a.OrderID(),
		technicianID: a.TechnicianID(),
		assignedAt:   a.AssignedAt(),
		status:       a.Status(),
		completedAt:  a.CompletedAt(),
		abandonedAt:  a.AbandonedAt(),
		seq:          seq,
	}
}

func (rec assignmentRecord) restore() (*assignment.Assignment, error) {
	return assignment.RestoreAssignment(
		rec.id, rec.orderID, rec.technicianID, rec.assignedAt, rec.status, rec.completedAt, rec.abandonedAt)
}
