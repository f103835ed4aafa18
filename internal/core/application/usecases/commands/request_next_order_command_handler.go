package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/technician"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// DefaultClaimRetryLimit bounds the claim attempts of one request.
const DefaultClaimRetryLimit = 3

// ErrQueueContention is the cause of the conflict returned when every claim
// attempt of a request lost its race.
var ErrQueueContention = errors.New("queue contention, try again")

// RequestNextOrderCommandHandler hands the best eligible order to a technician.
//
// Each attempt runs in its own unit of work: it reloads the technician's orders
// and the dealership queue, lets the OrderDispatcher pick and claim a candidate
// and writes the claim conditionally. When another request claimed the same
// order first the attempt is discarded and the next one starts from fresh data.
// Eligibility errors are final and never retried.
type RequestNextOrderCommandHandler struct {
	uowFactory UoWFactory
	directory  ports.TechnicianDirectory
	dispatcher services.OrderDispatcher
	clock      kernel.Clock
	retryLimit int
}

// NewRequestNextOrderCommandHandler creates the self-service claim handler.
// A non-positive retryLimit falls back to DefaultClaimRetryLimit.
func NewRequestNextOrderCommandHandler(
	uowFactory UoWFactory,
	directory ports.TechnicianDirectory,
	dispatcher services.OrderDispatcher,
	clock kernel.Clock,
	retryLimit int,
) RequestNextOrderCommandHandler {
	if retryLimit <= 0 {
		retryLimit = DefaultClaimRetryLimit
	}
	return RequestNextOrderCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		dispatcher: dispatcher,
		clock:      clock,
		retryLimit: retryLimit,
	}
}

// Handle claims an order for the command's technician and returns it.
//
// Returns:
//   - errs.ObjectNotFoundError for an unknown technician
//   - errs.ErrCapacityExceeded, errs.ErrCooldownActive
//   - errs.ErrNoOrdersAvailable, errs.ErrNoMatchingOrder
//   - errs.ConflictError wrapping ErrQueueContention after retryLimit lost races
func (h RequestNextOrderCommandHandler) Handle(
	ctx context.Context,
	cmd RequestNextOrderCommand,
) (*order.RepairOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	tech, err := h.directory.Get(ctx, cmd.TechnicianID())
	if err != nil {
		return nil, err
	}

	for range h.retryLimit {
		claimed, claimErr := h.tryClaim(ctx, tech)
		if errors.Is(claimErr, errs.ErrConflict) {
			continue
		}
		return claimed, claimErr
	}

	return nil, errs.NewConflictErrorWithCause("queue", tech.DealershipID().String(), ErrQueueContention)
}

func (h RequestNextOrderCommandHandler) tryClaim(
	ctx context.Context,
	tech *technician.Technician,
) (*order.RepairOrder, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	owned, err := orderRepo.FetchByTechnician(ctx, tech.ID())
	if err != nil {
		return nil, err
	}

	pending, err := orderRepo.FetchPending(ctx, tech.DealershipID())
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()

	claimed, err := h.dispatcher.Dispatch(tech, owned, pending, now)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.ConditionalUpdate(ctx, claimed, order.Pending); err != nil {
		return nil, err
	}

	opened, err := assignment.NewAssignment(kernel.NewUUID(), claimed.ID(), tech.ID(), now)
	if err != nil {
		return nil, err
	}

	if err = uow.AssignmentRepository().Insert(ctx, opened); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return claimed, nil
}
