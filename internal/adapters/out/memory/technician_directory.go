package memory

import (
	"context"
	"sync"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/technician"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var _ ports.TechnicianDirectory = (*TechnicianDirectory)(nil)

// TechnicianDirectory is a fixed, in-process set of technicians.
type TechnicianDirectory struct {
	mu          sync.RWMutex
	technicians map[kernel.UUID]*technician.Technician
}

// NewTechnicianDirectory creates a directory holding techs.
func NewTechnicianDirectory(techs ...*technician.Technician) *TechnicianDirectory {
	d := &TechnicianDirectory{technicians: make(map[kernel.UUID]*technician.Technician, len(techs))}
	for _, t := range techs {
		d.Put(t)
	}
	return d
}

// Put adds or replaces a technician.
func (d *TechnicianDirectory) Put(t *technician.Technician) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.technicians[t.ID()] = t
}

func (d *TechnicianDirectory) Get(_ context.Context, id kernel.UUID) (*technician.Technician, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	t, ok := d.technicians[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("technicianId", id.String())
	}
	return t, nil
}
