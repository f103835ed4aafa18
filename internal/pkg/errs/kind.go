package errs

import "errors"

// Kind is the stable, transport-neutral classification of a failure.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindInvalidTransition Kind = "invalid_transition"
	KindConflict          Kind = "conflict"
	KindCapacityExceeded  Kind = "capacity_exceeded"
	KindCooldownActive    Kind = "cooldown_active"
	KindNoMatchingOrder   Kind = "no_matching_order"
	KindNoOrdersAvailable Kind = "no_orders_available"
	KindValidation        Kind = "validation_error"
	KindStoreUnavailable  Kind = "store_unavailable"
)

// kindTable is checked in order; the first matching sentinel wins.
var kindTable = []struct {
	sentinel error
	kind     Kind
}{
	{ErrStoreUnavailable, KindStoreUnavailable},
	{ErrObjectNotFound, KindNotFound},
	{ErrInvalidTransition, KindInvalidTransition},
	{ErrConflict, KindConflict},
	{ErrCapacityExceeded, KindCapacityExceeded},
	{ErrCooldownActive, KindCooldownActive},
	{ErrNoMatchingOrder, KindNoMatchingOrder},
	{ErrNoOrdersAvailable, KindNoOrdersAvailable},
	{ErrValueIsRequired, KindValidation},
	{ErrValueIsInvalid, KindValidation},
	{ErrValueIsOutOfRange, KindValidation},
}

// KindOf classifies err. Errors that match no known sentinel are infrastructure
// faults and are reported as KindStoreUnavailable. KindOf(nil) returns "".
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	for _, entry := range kindTable {
		if errors.Is(err, entry.sentinel) {
			return entry.kind
		}
	}
	return KindStoreUnavailable
}

// IsFault reports whether the kind is an infrastructure fault rather than an
// expected business outcome.
func (k Kind) IsFault() bool {
	return k == KindStoreUnavailable
}
