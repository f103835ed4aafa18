package queries

import (
	"context"
	"slices"
)

// GetTechnicianOrdersQueryHandler lists a technician's open work, oldest
// assignment first.
type GetTechnicianOrdersQueryHandler struct {
	reader OrderReader
}

// NewGetTechnicianOrdersQueryHandler creates a handler for workload queries.
func NewGetTechnicianOrdersQueryHandler(reader OrderReader) GetTechnicianOrdersQueryHandler {
	return GetTechnicianOrdersQueryHandler{reader: reader}
}

// Handle returns the workload. The technician is not looked up; an unknown id
// yields an empty slice.
func (h GetTechnicianOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetTechnicianOrdersQuery,
) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	owned, err := h.reader.FetchByTechnician(ctx, query.TechnicianID())
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(owned))
	for _, o := range owned {
		views = append(views, NewOrderView(o))
	}

	slices.SortStableFunc(views, func(a, b OrderView) int {
		if c := compareAssignedAt(a, b); c != 0 {
			return c
		}
		return a.ID.Compare(b.ID)
	})

	return views, nil
}

func compareAssignedAt(a, b OrderView) int {
	switch {
	case a.AssignedAt == nil && b.AssignedAt == nil:
		return 0
	case a.AssignedAt == nil:
		return 1
	case b.AssignedAt == nil:
		return -1
	}
	return a.AssignedAt.Compare(*b.AssignedAt)
}
