package services

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// DefaultReorderEpsilon is the offset used when an order is moved to the head or
// the tail of its priority bucket.
const DefaultReorderEpsilon = 60 * time.Second

// timeResolution is the precision of stored timestamps.
const timeResolution = time.Microsecond

// ErrNoRoomInQueue is returned when two neighbours are so close in time that no
// distinct timestamp fits between them.
var ErrNoRoomInQueue = errors.New("no room between neighbouring orders, move a neighbour first")

// QueueRanker orders a dealership queue and computes new queue positions.
//
// Queue order is priority class ascending, then createdAt ascending, then id
// ascending. Position is derived from createdAt only, so a manual reorder is a
// timestamp change on the moved order.
//
// Example:
//
//	ranker := services.NewQueueRanker(services.DefaultReorderEpsilon)
//	queue := ranker.Rank(orders, dealershipID)
//	head := queue[0]
type QueueRanker struct {
	epsilon time.Duration
}

// NewQueueRanker creates a ranker. A non-positive epsilon falls back to DefaultReorderEpsilon.
func NewQueueRanker(epsilon time.Duration) QueueRanker {
	if epsilon <= 0 {
		epsilon = DefaultReorderEpsilon
	}
	return QueueRanker{epsilon: epsilon}
}

// Rank returns the pending orders of dealershipID in queue order. The input slice
// is not modified.
func (r QueueRanker) Rank(orders []*order.RepairOrder, dealershipID kernel.UUID) []*order.RepairOrder {
	ranked := make([]*order.RepairOrder, 0, len(orders))
	for _, o := range orders {
		if o.Status() == order.Pending && o.DealershipID().IsEqual(dealershipID) {
			ranked = append(ranked, o)
		}
	}
	slices.SortFunc(ranked, CompareQueuePosition)
	return ranked
}

// CompareQueuePosition is the total queue order used by Rank.
func CompareQueuePosition(a, b *order.RepairOrder) int {
	if a.Priority() != b.Priority() {
		if a.Priority() < b.Priority() {
			return -1
		}
		return 1
	}
	if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
		return c
	}
	return a.ID().Compare(b.ID())
}

// ReorderBefore computes the createdAt that places moved immediately before
// target within their shared priority bucket. A nil target moves the order to the
// end of its bucket.
//
// Parameters:
//   - queue: pending orders of the dealership, in any order; it may contain moved
//   - moved: the pending order being repositioned
//   - target: the order moved must precede, or nil
//
// Returns:
//   - time.Time: the new createdAt for moved
//   - bool: false when moved is already in place and nothing must be written
//   - error: InvalidTransitionError for non-pending orders or a target in another
//     bucket, ValueIsInvalidError when no distinct timestamp fits
func (r QueueRanker) ReorderBefore(
	queue []*order.RepairOrder,
	moved *order.RepairOrder,
	target *order.RepairOrder,
) (time.Time, bool, error) {
	if err := moved.Validate(); err != nil {
		return time.Time{}, false, err
	}
	if !moved.Status().Allows(order.ActionEdit) {
		return time.Time{}, false, errs.NewInvalidTransitionError(moved.Status().String(), "reorder")
	}

	bucket := r.bucketOf(queue, moved)

	if target == nil {
		return r.moveToEnd(bucket, moved)
	}

	if target.IsEqual(moved) {
		return time.Time{}, false, errs.NewValueIsInvalidErrorWithCause("targetOrderId",
			errors.New("an order cannot be reordered before itself"))
	}
	if !target.Status().Allows(order.ActionEdit) {
		return time.Time{}, false, errs.NewInvalidTransitionError(target.Status().String(), "reorder")
	}
	if target.Priority() != moved.Priority() {
		return time.Time{}, false, errs.NewInvalidTransitionError(
			fmt.Sprintf("%s bucket", moved.Priority()),
			fmt.Sprintf("reorder before an order of the %s bucket, change the priority instead", target.Priority()))
	}

	targetIdx := slices.IndexFunc(bucket, target.IsEqual)
	if targetIdx < 0 {
		return time.Time{}, false, errs.NewObjectNotFoundError("targetOrderId", target.ID().String())
	}

	if r.isImmediatelyBefore(queue, moved, target) {
		return moved.CreatedAt(), false, nil
	}

	targetAt := target.CreatedAt().Truncate(timeResolution)
	if targetIdx == 0 {
		return targetAt.Add(-r.epsilon), true, nil
	}

	predecessorAt := bucket[targetIdx-1].CreatedAt().Truncate(timeResolution)
	gap := targetAt.Sub(predecessorAt)
	if gap < 2*timeResolution {
		return time.Time{}, false, errs.NewValueIsInvalidErrorWithCause("targetOrderId", ErrNoRoomInQueue)
	}

	return predecessorAt.Add(gap / 2).Truncate(timeResolution), true, nil
}

func (r QueueRanker) moveToEnd(bucket []*order.RepairOrder, moved *order.RepairOrder) (time.Time, bool, error) {
	if len(bucket) == 0 {
		return moved.CreatedAt(), false, nil
	}
	last := bucket[len(bucket)-1]
	if CompareQueuePosition(moved, last) > 0 {
		return moved.CreatedAt(), false, nil
	}
	return last.CreatedAt().Truncate(timeResolution).Add(r.epsilon), true, nil
}

// bucketOf returns the ranked orders sharing moved's bucket, excluding moved.
func (r QueueRanker) bucketOf(queue []*order.RepairOrder, moved *order.RepairOrder) []*order.RepairOrder {
	bucket := make([]*order.RepairOrder, 0, len(queue))
	for _, o := range r.Rank(queue, moved.DealershipID()) {
		if o.Priority() == moved.Priority() && !o.IsEqual(moved) {
			bucket = append(bucket, o)
		}
	}
	return bucket
}

func (r QueueRanker) isImmediatelyBefore(queue []*order.RepairOrder, moved, target *order.RepairOrder) bool {
	ranked := r.Rank(queue, moved.DealershipID())
	idx := slices.IndexFunc(ranked, moved.IsEqual)
	return idx >= 0 && idx+1 < len(ranked) && ranked[idx+1].IsEqual(target)
}
