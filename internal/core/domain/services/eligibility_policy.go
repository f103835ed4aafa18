package services

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

const (
	// DefaultMaxActiveOrders is the number of in-progress orders a technician may hold.
	DefaultMaxActiveOrders = 3
	// DefaultAssignmentCooldown is the minimum time between two self-service claims.
	DefaultAssignmentCooldown = 5 * time.Minute
)

// EligibilityPolicy decides whether a technician may request another order.
// Only in-progress orders count; held orders neither use capacity nor start a cooldown.
type EligibilityPolicy struct {
	maxActive int
	cooldown  time.Duration
}

// NewEligibilityPolicy creates a policy. maxActive must be positive and cooldown
// must not be negative.
func NewEligibilityPolicy(maxActive int, cooldown time.Duration) (EligibilityPolicy, error) {
	if maxActive <= 0 {
		return EligibilityPolicy{}, errs.NewValueIsOutOfRangeError("maxActiveOrders", maxActive, 1, "unbounded")
	}
	if cooldown < 0 {
		return EligibilityPolicy{}, errs.NewValueIsOutOfRangeError("assignmentCooldown", cooldown, 0, "unbounded")
	}
	return EligibilityPolicy{maxActive: maxActive, cooldown: cooldown}, nil
}

// Check returns nil when technicianID may claim now. owned is any set of orders;
// only those in progress and assigned to technicianID are considered.
//
// Returns:
//   - errs.ErrCapacityExceeded when the technician already holds maxActive orders
//   - errs.ErrCooldownActive when the latest claim is younger than the cooldown
func (p EligibilityPolicy) Check(technicianID kernel.UUID, owned []*order.RepairOrder, now time.Time) error {
	active := 0
	inCooldown := false
	for _, o := range owned {
		if o.Status() != order.InProgress || !o.IsAssignedTo(technicianID) {
			continue
		}
		active++
		if at := o.AssignedAt(); at != nil && now.Sub(*at) < p.cooldown {
			inCooldown = true
		}
	}

	switch {
	case active >= p.maxActive:
		return errs.ErrCapacityExceeded
	case active > 0 && inCooldown:
		return errs.ErrCooldownActive
	default:
		return nil
	}
}
