// Package pgerrs converts database driver failures into the error kinds of the
// dispatch core.
package pgerrs

import (
	"dispatch/internal/pkg/errs"

	pkgerrors "github.com/pkg/errors"
)

// Wrap reports err as an infrastructure fault. The stack of the call site is
// attached so that logs show where the store failed.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return errs.NewStoreUnavailableError(pkgerrors.WithStack(err))
}

// Wrapf is Wrap with a message describing the failed operation.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return errs.NewStoreUnavailableError(pkgerrors.Wrapf(err, format, args...))
}
