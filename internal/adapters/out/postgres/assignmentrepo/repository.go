package assignmentrepo

import (
	"context"
	"errors"

	"dispatch/internal/adapters/out/postgres/pgerrs"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.AssignmentRepository = (*GormAssignmentRepository)(nil)

// GormAssignmentRepository implements ports.AssignmentRepository using GORM.
// The database must be opened with gorm.Config.TranslateError so that key
// violations are reported as conflicts.
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a repository over db, which may be a transaction.
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Insert appends a record. A second open record for the same order violates the
// partial unique index and is reported as errs.ConflictError.
func (r *GormAssignmentRepository) Insert(ctx context.Context, a *assignment.Assignment) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	err := r.db.WithContext(ctx).Create(&dto).Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.NewConflictErrorWithCause("assignment", a.OrderID().String(), err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errs.NewObjectNotFoundErrorWithCause("repairOrder", a.OrderID().String(), err)
	default:
		return pgerrs.Wrapf(err, "insert assignment %s", a.ID())
	}
}

// Update writes the close of a record that is still open in the database.
func (r *GormAssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	result := r.db.WithContext(ctx).Model(&AssignmentDTO{}).
		Where("id = ? AND status = ?", dto.ID, assignment.InProgress.String()).
		Updates(map[string]any{
			"status":       dto.Status,
			"completed_at": dto.CompletedAt,
			"abandoned_at": dto.AbandonedAt,
		})
	if result.Error != nil {
		return pgerrs.Wrapf(result.Error, "update assignment %s", a.ID())
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&AssignmentDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
		return pgerrs.Wrap(err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("assignment", a.ID().String())
	}
	return errs.NewConflictError("assignment", a.ID().String())
}

func (r *GormAssignmentRepository) GetOpenByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*assignment.Assignment, error) {
	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		First(&dto, "repair_order_id = ? AND status = ?", orderID.Bytes(), assignment.InProgress.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", orderID.String())
		}
		return nil, pgerrs.Wrap(err)
	}

	return toDomain(dto)
}

func (r *GormAssignmentRepository) ListByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*assignment.Assignment, error) {
	var dtos []AssignmentDTO
	err := r.db.WithContext(ctx).
		Order("assigned_at, id").
		Find(&dtos, "repair_order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, pgerrs.Wrap(err)
	}

	trail := make([]*assignment.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		a, restoreErr := toDomain(dto)
		if restoreErr != nil {
			return nil, restoreErr
		}
		trail = append(trail, a)
	}

	return trail, nil
}
