package orderrepo

import (
	"context"
	"errors"

	"dispatch/internal/adapters/out/postgres/pgerrs"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.OrderRepository = (*GormOrderRepository)(nil)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker ports.OrderTracker
}

// NewGormOrderRepository creates a new GORM order repository. db may be a
// transaction; tracker is told about every written order.
func NewGormOrderRepository(db *gorm.DB, tracker ports.OrderTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.RepairOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Omit("Assignments").Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("repairOrder", aggregate.ID().String(), err)
		}
		return pgerrs.Wrapf(err, "insert repair order %s", aggregate.ID())
	}

	r.tracker.TrackOrder(aggregate, false)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.RepairOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RepairOrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("repairOrder", id.String())
		}
		return nil, pgerrs.Wrap(err)
	}

	return toDomain(dto)
}

// FetchPending retrieves the pending orders of a dealership.
func (r *GormOrderRepository) FetchPending(ctx context.Context, dealershipID kernel.UUID) ([]*order.RepairOrder, error) {
	return r.find(ctx, "dealership_id = ? AND status = ?", dealershipID.Bytes(), order.Pending.String())
}

// FetchByTechnician retrieves the in-progress and on-hold orders of a technician.
func (r *GormOrderRepository) FetchByTechnician(
	ctx context.Context,
	technicianID kernel.UUID,
) ([]*order.RepairOrder, error) {
	return r.find(ctx, "assigned_to = ? AND status IN ?",
		technicianID.Bytes(), []string{order.InProgress.String(), order.OnHold.String()})
}

func (r *GormOrderRepository) find(ctx context.Context, query string, args ...any) ([]*order.RepairOrder, error) {
	var dtos []RepairOrderDTO
	if err := r.db.WithContext(ctx).Where(query, args...).Find(&dtos).Error; err != nil {
		return nil, pgerrs.Wrap(err)
	}

	orders := make([]*order.RepairOrder, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// ConditionalUpdate writes the aggregate only if the row still has the expected
// status and the version the aggregate was loaded with. Zero affected rows mean
// another writer got there first.
func (r *GormOrderRepository) ConditionalUpdate(
	ctx context.Context,
	aggregate *order.RepairOrder,
	expectedStatus order.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RepairOrderDTO{}).
		Where("id = ? AND status = ? AND version = ?", dto.ID, expectedStatus.String(), dto.Version).
		Updates(dto.updateColumns())
	if result.Error != nil {
		return pgerrs.Wrapf(result.Error, "update repair order %s", aggregate.ID())
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("repairOrder", aggregate.ID().String())
	}

	aggregate.IncrementVersion()
	r.tracker.TrackOrder(aggregate, false)
	return nil
}

// Delete removes the order if the row still has the expected status and
// version. Its assignments go with it through ON DELETE CASCADE.
func (r *GormOrderRepository) Delete(
	ctx context.Context,
	aggregate *order.RepairOrder,
	expectedStatus order.Status,
) error {
	id := aggregate.ID()
	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ? AND version = ?", id.Bytes(), expectedStatus.String(), aggregate.Version()).
		Delete(&RepairOrderDTO{})
	if result.Error != nil {
		return pgerrs.Wrapf(result.Error, "delete repair order %s", id)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&RepairOrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
			return pgerrs.Wrapf(err, "count repair order %s", id)
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("repairOrder", id.String())
		}
		return errs.NewConflictError("repairOrder", id.String())
	}

	r.tracker.TrackOrder(aggregate, true)
	return nil
}
