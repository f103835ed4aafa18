// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// a lifecycle transition on the loaded aggregate and a conditional write.
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

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// AssignmentRepoFactory provides access to the assignment repository within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when a command never touches the assignment trail.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions across orders and their assignments.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   assignmentRepo := uow.AssignmentRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		AssignmentRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

// closeOpenAssignment applies closeFn to the open assignment of orderID and
// persists it. An order without an open record is left as is.
func closeOpenAssignment(
	ctx context.Context,
	repo ports.AssignmentRepository,
	orderID kernel.UUID,
	closeFn func(a *assignment.Assignment) error,
) error {
	open, err := repo.GetOpenByOrder(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err = closeFn(open); err != nil {
		return err
	}

	return repo.Update(ctx, open)
}

// transitionOrder loads the order, applies a lifecycle change and writes it back
// on the condition that nobody changed it in between.
func transitionOrder(
	ctx context.Context,
	repo ports.OrderRepository,
	orderID kernel.UUID,
	apply func(o *order.RepairOrder) error,
) (*order.RepairOrder, error) {
	o, err := repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	expected := o.Status()
	if err = apply(o); err != nil {
		return nil, err
	}

	if err = repo.ConditionalUpdate(ctx, o, expected); err != nil {
		return nil, err
	}

	return o, nil
}
