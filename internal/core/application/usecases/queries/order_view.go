// Package queries contains read-only operations over repair orders.
// Query handlers never open a transaction and never write.
package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderReader is the read side of the order store. ports.OrderRepository
// satisfies it, so handlers can be wired to a repository obtained outside of
// any transaction.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.RepairOrder, error)
	FetchPending(ctx context.Context, dealershipID kernel.UUID) ([]*order.RepairOrder, error)
	FetchByTechnician(ctx context.Context, technicianID kernel.UUID) ([]*order.RepairOrder, error)
}

// OrderView is the read model of a repair order returned by every query.
//
// Example:
//
//	view := queries.NewOrderView(o)
//	fmt.Printf("%s is %s (priority %s)\n", view.Description, view.Status, view.Priority)
type OrderView struct {
	ID           kernel.UUID
	Description  string
	Detail       string
	Status       order.Status
	Priority     order.PriorityClass
	Difficulty   order.DifficultyLevel
	DealershipID kernel.UUID
	CreatedAt    time.Time
	AssignedTo   *kernel.UUID
	AssignedAt   *time.Time
	CompletedAt  *time.Time
	HoldReason   *string
	Version      int

	// Position is the 1-based rank within the dealership queue. It is set only
	// by GetDealershipQueueQueryHandler.
	Position int
}

// NewOrderView copies the state of o into a view.
func NewOrderView(o *order.RepairOrder) OrderView {
	return OrderView{
		ID:           o.ID(),
		Description:  o.Description(),
		Detail:       o.Detail(),
		Status:       o.Status(),
		Priority:     o.Priority(),
		Difficulty:   o.Difficulty(),
		DealershipID: o.DealershipID(),
		CreatedAt:    o.CreatedAt(),
		AssignedTo:   o.AssignedTo(),
		AssignedAt:   o.AssignedAt(),
		CompletedAt:  o.CompletedAt(),
		HoldReason:   o.HoldReason(),
		Version:      o.Version(),
	}
}
