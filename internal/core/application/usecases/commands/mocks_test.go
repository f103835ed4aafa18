package commands_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/technician"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.RepairOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.RepairOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.RepairOrder), args.Error(1)
}

func (m *MockOrderRepository) FetchPending(ctx context.Context, dealershipID kernel.UUID) ([]*order.RepairOrder, error) {
	args := m.Called(ctx, dealershipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.RepairOrder), args.Error(1)
}

func (m *MockOrderRepository) FetchByTechnician(
	ctx context.Context,
	technicianID kernel.UUID,
) ([]*order.RepairOrder, error) {
	args := m.Called(ctx, technicianID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.RepairOrder), args.Error(1)
}

func (m *MockOrderRepository) ConditionalUpdate(
	ctx context.Context,
	o *order.RepairOrder,
	expectedStatus order.Status,
) error {
	args := m.Called(ctx, o, expectedStatus)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, aggregate *order.RepairOrder, expectedStatus order.Status) error {
	args := m.Called(ctx, aggregate, expectedStatus)
	return args.Error(0)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Insert(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) GetOpenByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*assignment.Assignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*assignment.Assignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignment.Assignment), args.Error(1)
}

// MockUoW satisfies both commands.UoW and commands.OrderUoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockTechnicianDirectory struct{ mock.Mock }

func (m *MockTechnicianDirectory) Get(ctx context.Context, id kernel.UUID) (*technician.Technician, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*technician.Technician), args.Error(1)
}

// fixture wires a MockUoW with both repositories and expects one managed
// transaction: Begin, any number of repository accesses and a deferred Rollback.
type fixture struct {
	orders      *MockOrderRepository
	assignments *MockAssignmentRepository
	uow         *MockUoW
	factory     *MockUoWFactory
	orderOnly   *MockOrderUoWFactory
	clock       *kernel.FixedClock
}

func newFixture() *fixture {
	f := &fixture{
		orders:      new(MockOrderRepository),
		assignments: new(MockAssignmentRepository),
		uow:         new(MockUoW),
		factory:     new(MockUoWFactory),
		orderOnly:   new(MockOrderUoWFactory),
		clock:       kernel.NewFixedClock(now),
	}
	f.uow.On("OrderRepository").Return(f.orders).Maybe()
	f.uow.On("AssignmentRepository").Return(f.assignments).Maybe()
	f.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	f.factory.On("Create").Return(f.uow).Maybe()
	f.orderOnly.On("Create").Return(f.uow).Maybe()
	return f
}

func (f *fixture) expectTx() {
	f.uow.On("Begin", mock.Anything).Return(nil).Once()
}

func (f *fixture) expectCommit() {
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
}

func (f *fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.orders.AssertExpectations(t)
	f.assignments.AssertExpectations(t)
	f.uow.AssertExpectations(t)
}

func newPendingOrder(t *testing.T, dealershipID kernel.UUID) *order.RepairOrder {
	t.Helper()
	o, err := order.NewRepairOrder(kernel.NewUUID(), "RO-1", "", dealershipID,
		order.PriorityWait, order.DefaultDifficulty, now.Add(-time.Hour))
	require.NoError(t, err)
	return o
}

func newClaimedOrder(t *testing.T, dealershipID, technicianID kernel.UUID) *order.RepairOrder {
	t.Helper()
	o := newPendingOrder(t, dealershipID)
	require.NoError(t, o.Claim(technicianID, now.Add(-30*time.Minute)))
	return o
}

func newOpenAssignment(t *testing.T, o *order.RepairOrder) *assignment.Assignment {
	t.Helper()
	a, err := assignment.NewAssignment(kernel.NewUUID(), o.ID(), *o.AssignedTo(), *o.AssignedAt())
	require.NoError(t, err)
	return a
}

func newTech(t *testing.T, dealershipID kernel.UUID, skill technician.SkillLevel) *technician.Technician {
	t.Helper()
	tech, err := technician.NewTechnician(kernel.NewUUID(), dealershipID, skill)
	require.NoError(t, err)
	return tech
}
