package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/technician"

	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC)

func pendingOrder(
	t *testing.T,
	dealershipID kernel.UUID,
	priority order.PriorityClass,
	difficulty order.DifficultyLevel,
	createdAt time.Time,
) *order.RepairOrder {
	t.Helper()
	o, err := order.NewRepairOrder(kernel.NewUUID(), "RO", "", dealershipID, priority, difficulty, createdAt)
	require.NoError(t, err)
	return o
}

func newTechnician(t *testing.T, dealershipID kernel.UUID, skill technician.SkillLevel) *technician.Technician {
	t.Helper()
	tech, err := technician.NewTechnician(kernel.NewUUID(), dealershipID, skill)
	require.NoError(t, err)
	return tech
}

func ids(orders []*order.RepairOrder) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID())
	}
	return out
}
