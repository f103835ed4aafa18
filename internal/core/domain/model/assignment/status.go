package assignment

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the state of a single assignment record.
type Status int

const (
	// Unknown (0) catches uninitialized values.
	Unknown Status = iota
	// InProgress is the open record of the current assignee.
	InProgress
	// Completed records a technician who finished the order.
	Completed
	// Abandoned records a technician who lost the order to the queue or to another technician.
	Abandoned
)

var statusNames = map[Status]string{
	Unknown:    "unknown",
	InProgress: "in_progress",
	Completed:  "completed",
	Abandoned:  "abandoned",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// Validate checks that s is a known status.
func (s Status) Validate() error {
	if s < InProgress || s > Abandoned {
		return errs.NewValueIsInvalidErrorWithCause("assignment status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// ParseStatus converts a persisted name back into a Status.
func ParseStatus(name string) (Status, error) {
	for status, statusName := range statusNames {
		if status != Unknown && statusName == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("assignment status", fmt.Errorf("%q is not a valid status", name))
}
