package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a repair order.
//
// State transitions (see lifecycle.go for the full table):
//
//	            claim / force_assign         complete
//	Pending ─────────────────────> InProgress ───────> Completed
//	   ^                             │    ^
//	   │ return_to_queue        hold │    │ resume
//	   │                             v    │
//	   └──────────────────────────  OnHold
//
// Completed is terminal.
type Status int

const (
	// Unknown (0) catches uninitialized values.
	Unknown Status = iota

	// Pending orders wait in the dealership queue.
	Pending

	// InProgress orders are owned by a technician.
	InProgress

	// OnHold orders are paused by their technician with a reason.
	OnHold

	// Completed orders are finished. No transition leaves this status.
	Completed
)

var statusNames = map[Status]string{
	Unknown:    "unknown",
	Pending:    "pending",
	InProgress: "in_progress",
	OnHold:     "on_hold",
	Completed:  "completed",
}

// String returns the persisted/wire name of the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// Validate checks that s is one of the four lifecycle states.
func (s Status) Validate() error {
	if s < Pending || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no transition can leave s.
func (s Status) IsTerminal() bool {
	return s == Completed
}

// HasAssignee reports whether an order in status s must carry a technician.
func (s Status) HasAssignee() bool {
	return s == InProgress || s == OnHold
}

// ParseStatus converts a wire name back into a Status.
func ParseStatus(name string) (Status, error) {
	for status, statusName := range statusNames {
		if status != Unknown && statusName == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", name))
}
