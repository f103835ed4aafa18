package ports

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
)

// AssignmentRepository stores the assignment audit trail.
type AssignmentRepository interface {
	// Insert appends a new record.
	Insert(ctx context.Context, a *assignment.Assignment) error

	// Update persists the closing of a record.
	Update(ctx context.Context, a *assignment.Assignment) error

	// GetOpenByOrder returns the in-progress record of an order or errs.ObjectNotFoundError.
	GetOpenByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)

	// ListByOrder returns every record of an order, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*assignment.Assignment, error)
}
