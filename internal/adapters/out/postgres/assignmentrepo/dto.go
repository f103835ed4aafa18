// Package assignmentrepo persists the assignment audit trail of repair orders.
package assignmentrepo

import (
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO is one row of the assignments table. Rows belong to a repair
// order and are removed with it by the foreign key declared on the order side.
type AssignmentDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RepairOrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	TechnicianID  uuid.UUID `gorm:"type:uuid;not null;index"`
	AssignedAt    time.Time `gorm:"not null"`
	Status        string    `gorm:"type:varchar(16);not null"`
	CompletedAt   *time.Time
	AbandonedAt   *time.Time
}

// TableName specifies the database table name for assignment rows.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

func fromDomain(a *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:            a.ID().Bytes(),
		RepairOrderID: a.OrderID().Bytes(),
		TechnicianID:  a.TechnicianID().Bytes(),
		AssignedAt:    a.AssignedAt(),
		Status:        a.Status().String(),
		CompletedAt:   a.CompletedAt(),
		AbandonedAt:   a.AbandonedAt(),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.RepairOrderID[:])
	if err != nil {
		return nil, err
	}
	technicianID, err := kernel.UUIDFromBytes(dto.TechnicianID[:])
	if err != nil {
		return nil, err
	}
	status, err := assignment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(id, orderID, technicianID, dto.AssignedAt.UTC(), status,
		utc(dto.CompletedAt), utc(dto.AbandonedAt))
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
