// Package orderrepo provides data transfer objects and mapping functions for
// repair order persistence, and the GORM repository built on them.
package orderrepo

import (
	"time"

	"dispatch/internal/adapters/out/postgres/assignmentrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// RepairOrderDTO represents the database structure of a repair order. The
// composite index serves the dealership queue lookup; assignments are deleted
// together with their order.
type RepairOrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Description     string     `gorm:"not null"`
	Detail          string     `gorm:"not null;default:''"`
	Status          string     `gorm:"type:varchar(16);not null;index:idx_repair_orders_queue,priority:2"`
	DealershipID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_repair_orders_queue,priority:1"`
	PriorityClass   int        `gorm:"type:smallint;not null"`
	DifficultyLevel int        `gorm:"type:smallint;not null"`
	CreatedAt       time.Time  `gorm:"autoCreateTime:false;not null"`
	AssignedTo      *uuid.UUID `gorm:"type:uuid;index"`
	AssignedAt      *time.Time
	CompletedAt     *time.Time
	HoldReason      *string
	Version         int `gorm:"not null;default:0"`

	Assignments []assignmentrepo.AssignmentDTO `gorm:"foreignKey:RepairOrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for repair orders.
func (RepairOrderDTO) TableName() string {
	return "repair_orders"
}

func fromDomain(o *order.RepairOrder) RepairOrderDTO {
	var assignedTo *uuid.UUID
	if id := o.AssignedTo(); id != nil {
		raw := id.Bytes()
		assignedTo = &raw
	}

	return RepairOrderDTO{
		ID:              o.ID().Bytes(),
		Description:     o.Description(),
		Detail:          o.Detail(),
		Status:          o.Status().String(),
		DealershipID:    o.DealershipID().Bytes(),
		PriorityClass:   int(o.Priority()),
		DifficultyLevel: int(o.Difficulty()),
		CreatedAt:       o.CreatedAt(),
		AssignedTo:      assignedTo,
		AssignedAt:      o.AssignedAt(),
		CompletedAt:     o.CompletedAt(),
		HoldReason:      o.HoldReason(),
		Version:         o.Version(),
	}
}

// updateColumns lists every mutable column, so that cleared optional fields are
// written as NULL.
func (dto RepairOrderDTO) updateColumns() map[string]any {
	return map[string]any{
		"description":      dto.Description,
		"detail":           dto.Detail,
		"status":           dto.Status,
		"priority_class":   dto.PriorityClass,
		"difficulty_level": dto.DifficultyLevel,
		"created_at":       dto.CreatedAt,
		"assigned_to":      dto.AssignedTo,
		"assigned_at":      dto.AssignedAt,
		"completed_at":     dto.CompletedAt,
		"hold_reason":      dto.HoldReason,
		"version":          dto.Version + 1,
	}
}

func toDomain(dto RepairOrderDTO) (*order.RepairOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	dealershipID, err := kernel.UUIDFromBytes(dto.DealershipID[:])
	if err != nil {
		return nil, err
	}

	var assignedTo *kernel.UUID
	if dto.AssignedTo != nil {
		techID, techErr := kernel.UUIDFromBytes((*dto.AssignedTo)[:])
		if techErr != nil {
			return nil, techErr
		}
		assignedTo = &techID
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreRepairOrder(order.Snapshot{
		ID:           id,
		Description:  dto.Description,
		Detail:       dto.Detail,
		Status:       status,
		Priority:     order.PriorityClass(dto.PriorityClass),
		Difficulty:   order.DifficultyLevel(dto.DifficultyLevel),
		DealershipID: dealershipID,
		CreatedAt:    dto.CreatedAt.UTC(),
		AssignedTo:   assignedTo,
		AssignedAt:   utc(dto.AssignedAt),
		CompletedAt:  utc(dto.CompletedAt),
		HoldReason:   dto.HoldReason,
		Version:      dto.Version,
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
