package order

import "dispatch/internal/pkg/errs"

// Action names a lifecycle operation on a repair order.
type Action string

const (
	// ActionClaim is a technician taking the head of the queue.
	ActionClaim Action = "claim"
	// ActionForceAssign is a dispatcher assigning an order, skipping eligibility.
	ActionForceAssign Action = "force_assign"
	// ActionComplete closes the work.
	ActionComplete Action = "complete"
	// ActionHold pauses the work with a reason.
	ActionHold Action = "hold"
	// ActionResume continues held work.
	ActionResume Action = "resume"
	// ActionReturnToQueue puts assigned work back into the queue.
	ActionReturnToQueue Action = "return_to_queue"
	// ActionDelete hard-removes the order.
	ActionDelete Action = "delete"
	// ActionEdit covers priority, difficulty and queue-position edits.
	ActionEdit Action = "edit"
)

// transitions is the single source of truth for lifecycle legality.
// transitions[from][action] is the resulting status. Delete keeps the status
// because the order ceases to exist; the entry only records legality.
var transitions = map[Status]map[Action]Status{
	Pending: {
		ActionClaim:       InProgress,
		ActionForceAssign: InProgress,
		ActionDelete:      Pending,
		ActionEdit:        Pending,
	},
	InProgress: {
		ActionForceAssign:   InProgress,
		ActionComplete:      Completed,
		ActionHold:          OnHold,
		ActionReturnToQueue: Pending,
		ActionDelete:        InProgress,
	},
	OnHold: {
		ActionResume:        InProgress,
		ActionReturnToQueue: Pending,
		ActionDelete:        OnHold,
	},
	Completed: {},
}

// Next returns the status reached by applying action to s, or an
// InvalidTransitionError if the lifecycle does not allow it.
func (s Status) Next(action Action) (Status, error) {
	if next, ok := transitions[s][action]; ok {
		return next, nil
	}
	return Unknown, errs.NewInvalidTransitionError(s.String(), string(action))
}

// Allows reports whether action is legal from s.
func (s Status) Allows(action Action) bool {
	_, err := s.Next(action)
	return err == nil
}
