package queries_test

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

var now = time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.RepairOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.RepairOrder), args.Error(1)
}

func (m *MockOrderReader) FetchPending(ctx context.Context, dealershipID kernel.UUID) ([]*order.RepairOrder, error) {
	args := m.Called(ctx, dealershipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.RepairOrder), args.Error(1)
}

func (m *MockOrderReader) FetchByTechnician(
	ctx context.Context,
	technicianID kernel.UUID,
) ([]*order.RepairOrder, error) {
	args := m.Called(ctx, technicianID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.RepairOrder), args.Error(1)
}
