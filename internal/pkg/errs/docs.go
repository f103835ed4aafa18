// Package errs provides standardized error types for the dispatch application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its bounds
//   - ObjectNotFoundError: For when an object cannot be found
//   - InvalidTransitionError: For when a lifecycle action is illegal in the current status
//   - ConflictError: For when an optimistic conditional write lost a race
//   - StoreUnavailableError: For infrastructure faults
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// KindOf maps any error onto the closed set of failure kinds that collaborators
// render to users. The eligibility sentinels (ErrCapacityExceeded, ErrCooldownActive,
// ErrNoMatchingOrder, ErrNoOrdersAvailable) have their own kinds and must never be
// collapsed into a generic failure.
package errs
