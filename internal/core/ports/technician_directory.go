package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/technician"
)

// TechnicianDirectory is the read-only source of technicians. Technicians are
// owned elsewhere; this service never writes them.
type TechnicianDirectory interface {
	// Get returns the technician or errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*technician.Technician, error)
}
