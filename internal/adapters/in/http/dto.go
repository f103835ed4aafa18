package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// Error is the body of every failed request. Reason is one of the errs.Kind
// values and stays stable across releases.
type Error struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type NewOrder struct {
	DealershipID kernel.UUID `json:"dealershipId"`
	Description  string      `json:"description"`
	Detail       string      `json:"detail"`
	Priority     int         `json:"priority"`
	Difficulty   int         `json:"difficulty"`
}

type HoldRequest struct {
	Reason string `json:"reason"`
}

type PriorityRequest struct {
	Priority int `json:"priority"`
}

type DifficultyRequest struct {
	Difficulty int `json:"difficulty"`
}

// ReorderRequest moves an order right before BeforeOrderID, or to the end of
// its priority bucket when BeforeOrderID is absent.
type ReorderRequest struct {
	BeforeOrderID *kernel.UUID `json:"beforeOrderId"`
}

type ReassignRequest struct {
	TechnicianID kernel.UUID `json:"technicianId"`
}

type Order struct {
	ID            kernel.UUID  `json:"id"`
	Description   string       `json:"description"`
	Detail        string       `json:"detail"`
	Status        string       `json:"status"`
	Priority      int          `json:"priority"`
	PriorityClass string       `json:"priorityClass"`
	Difficulty    int          `json:"difficulty"`
	DealershipID  kernel.UUID  `json:"dealershipId"`
	CreatedAt     time.Time    `json:"createdAt"`
	AssignedTo    *kernel.UUID `json:"assignedTo,omitempty"`
	AssignedAt    *time.Time   `json:"assignedAt,omitempty"`
	CompletedAt   *time.Time   `json:"completedAt,omitempty"`
	HoldReason    *string      `json:"holdReason,omitempty"`
	Version       int          `json:"version"`
	Position      int          `json:"position,omitempty"`
}

func toOrder(v queries.OrderView) Order {
	return Order{
		ID:            v.ID,
		Description:   v.Description,
		Detail:        v.Detail,
		Status:        v.Status.String(),
		Priority:      int(v.Priority),
		PriorityClass: v.Priority.String(),
		Difficulty:    int(v.Difficulty),
		DealershipID:  v.DealershipID,
		CreatedAt:     v.CreatedAt,
		AssignedTo:    v.AssignedTo,
		AssignedAt:    v.AssignedAt,
		CompletedAt:   v.CompletedAt,
		HoldReason:    v.HoldReason,
		Version:       v.Version,
		Position:      v.Position,
	}
}

func fromAggregate(o *order.RepairOrder) Order {
	return toOrder(queries.NewOrderView(o))
}

func toOrders(views []queries.OrderView) []Order {
	response := make([]Order, len(views))
	for i, v := range views {
		response[i] = toOrder(v)
	}
	return response
}
