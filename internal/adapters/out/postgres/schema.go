package postgres

import (
	"context"

	"dispatch/internal/adapters/out/postgres/assignmentrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/pgerrs"

	"gorm.io/gorm"
)

// openAssignmentIndex allows at most one in-progress assignment per order.
const openAssignmentIndex = `CREATE UNIQUE INDEX IF NOT EXISTS ux_assignments_open_order
	ON assignments (repair_order_id) WHERE status = 'in_progress'`

// Migrate creates or updates the repair_orders and assignments tables.
func Migrate(ctx context.Context, db *gorm.DB) error {
	conn := db.WithContext(ctx)
	if err := conn.AutoMigrate(&orderrepo.RepairOrderDTO{}, &assignmentrepo.AssignmentDTO{}); err != nil {
		return pgerrs.Wrapf(err, "auto migrate")
	}
	if err := conn.Exec(openAssignmentIndex).Error; err != nil {
		return pgerrs.Wrapf(err, "create open assignment index")
	}
	return nil
}
