package services

import (
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/technician"
	"dispatch/internal/pkg/errs"
)

// OrderDispatcher selects the next order for a technician and claims it.
//
// Selection algorithm:
//   - Eligibility is checked against the technician's own orders
//   - Candidates are the pending orders of the technician's dealership
//   - Orders harder than the technician's skill are skipped
//   - The head of the ranked remainder is claimed
//
// Each failure has its own error so the technician can be told exactly why no
// order was handed out.
//
// Example usage:
//
//	dispatcher := services.NewOrderDispatcher(ranker, policy)
//	claimed, err := dispatcher.Dispatch(tech, owned, pending, clock.Now())
//	if errors.Is(err, errs.ErrNoMatchingOrder) {
//	    // everything queued is beyond this technician's skill
//	}
type OrderDispatcher struct {
	ranker QueueRanker
	policy EligibilityPolicy
}

// NewOrderDispatcher creates a dispatcher from its ranking and eligibility rules.
func NewOrderDispatcher(ranker QueueRanker, policy EligibilityPolicy) OrderDispatcher {
	return OrderDispatcher{ranker: ranker, policy: policy}
}

// Dispatch checks eligibility, selects the best candidate and claims it for tech
// at now. The returned order is modified in memory only; persisting it is up to
// the caller.
//
// Parameters:
//   - tech: the requesting technician
//   - owned: orders currently assigned to tech
//   - pending: pending orders of tech's dealership
//   - now: claim time
//
// Returns:
//   - *order.RepairOrder: the claimed order
//   - error: ErrCapacityExceeded, ErrCooldownActive, ErrNoOrdersAvailable, ErrNoMatchingOrder
func (d OrderDispatcher) Dispatch(
	tech *technician.Technician,
	owned []*order.RepairOrder,
	pending []*order.RepairOrder,
	now time.Time,
) (*order.RepairOrder, error) {
	if err := tech.Validate(); err != nil {
		return nil, err
	}

	if err := d.policy.Check(tech.ID(), owned, now); err != nil {
		return nil, err
	}

	candidate, err := d.SelectCandidate(tech, pending)
	if err != nil {
		return nil, err
	}

	if err = candidate.Claim(tech.ID(), now); err != nil {
		return nil, err
	}

	return candidate, nil
}

// SelectCandidate returns the highest ranked pending order tech is skilled for,
// without claiming it.
func (d OrderDispatcher) SelectCandidate(
	tech *technician.Technician,
	pending []*order.RepairOrder,
) (*order.RepairOrder, error) {
	queue := d.ranker.Rank(pending, tech.DealershipID())
	if len(queue) == 0 {
		return nil, errs.ErrNoOrdersAvailable
	}

	for _, o := range queue {
		if tech.CanHandle(o.Difficulty()) {
			return o, nil
		}
	}

	return nil, errs.ErrNoMatchingOrder
}
