package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetTechnicianOrdersQueryIsNotConstructed = errors.New(
	"GetTechnicianOrdersQuery must be created via NewGetTechnicianOrdersQuery constructor",
)

// GetTechnicianOrdersQuery retrieves the current workload of a technician:
// every order assigned to them that is in progress or on hold.
type GetTechnicianOrdersQuery struct {
	technicianID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTechnicianOrdersQuery creates a workload query for technicianID.
func NewGetTechnicianOrdersQuery(technicianID kernel.UUID) (GetTechnicianOrdersQuery, error) {
	if err := technicianID.Validate(); err != nil {
		return GetTechnicianOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("technicianId", err)
	}
	return GetTechnicianOrdersQuery{technicianID: technicianID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTechnicianOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetTechnicianOrdersQueryIsNotConstructed)
}

func (q GetTechnicianOrdersQuery) TechnicianID() kernel.UUID {
	return q.technicianID
}
