package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockOrderTracker is a mock implementation of ports.OrderTracker.
type MockOrderTracker struct {
	mock.Mock
}

func (m *MockOrderTracker) TrackOrder(o *order.RepairOrder, deleted bool) {
	m.Called(o, deleted)
}

// OrderRepositoryIntegrationTestSuite verifies the repair order repository
// against a real PostgreSQL database.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *tcpostgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockOrderTracker
	base       time.Time
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres.Migrate(ctx, db))
	suite.base = time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE repair_orders CASCADE").Error)

	suite.tracker = new(MockOrderTracker)
	suite.tracker.On("TrackOrder", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RoundTripsEveryField() {
	ctx := context.Background()
	o := suite.createOrder(kernel.NewUUID(), order.PriorityLoaner, suite.base)
	suite.Require().NoError(o.Claim(kernel.NewUUID(), suite.base.Add(time.Minute)))
	suite.Require().NoError(o.PutOnHold("waiting for part"))

	suite.Require().NoError(suite.repository.Add(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.Snapshot(), loaded.Snapshot())
	suite.tracker.AssertCalled(suite.T(), "TrackOrder", o, false)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateIsConflict() {
	ctx := context.Background()
	o := suite.createOrder(kernel.NewUUID(), order.PriorityWait, suite.base)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	err := suite.repository.Add(ctx, o)

	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFetchPending_FiltersByDealershipAndStatus() {
	ctx := context.Background()
	dealershipID := kernel.NewUUID()
	pending := suite.createOrder(dealershipID, order.PriorityWait, suite.base)
	claimed := suite.createOrder(dealershipID, order.PriorityWait, suite.base)
	suite.Require().NoError(claimed.Claim(kernel.NewUUID(), suite.base))
	elsewhere := suite.createOrder(kernel.NewUUID(), order.PriorityWait, suite.base)
	for _, o := range []*order.RepairOrder{pending, claimed, elsewhere} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	queue, err := suite.repository.FetchPending(ctx, dealershipID)

	suite.Require().NoError(err)
	suite.Require().Len(queue, 1)
	suite.True(queue[0].IsEqual(pending))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFetchByTechnician_InProgressAndOnHold() {
	ctx := context.Background()
	dealershipID := kernel.NewUUID()
	technicianID := kernel.NewUUID()
	working := suite.createOrder(dealershipID, order.PriorityWait, suite.base)
	suite.Require().NoError(working.Claim(technicianID, suite.base))
	held := suite.createOrder(dealershipID, order.PriorityWait, suite.base)
	suite.Require().NoError(held.Claim(technicianID, suite.base))
	suite.Require().NoError(held.PutOnHold("parts"))
	done := suite.createOrder(dealershipID, order.PriorityWait, suite.base)
	suite.Require().NoError(done.Claim(technicianID, suite.base))
	suite.Require().NoError(done.Complete(suite.base.Add(time.Hour)))
	for _, o := range []*order.RepairOrder{working, held, done} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	owned, err := suite.repository.FetchByTechnician(ctx, technicianID)

	suite.Require().NoError(err)
	suite.Len(owned, 2)
	for _, o := range owned {
		suite.True(o.IsEqual(working) || o.IsEqual(held))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestConditionalUpdate_FirstWriterWins() {
	ctx := context.Background()
	o := suite.createOrder(kernel.NewUUID(), order.PriorityWait, suite.base)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Claim(kernel.NewUUID(), suite.base.Add(time.Minute)))
	suite.Require().NoError(suite.repository.ConditionalUpdate(ctx, first, order.Pending))
	suite.Equal(1, first.Version())

	suite.Require().NoError(second.Claim(kernel.NewUUID(), suite.base.Add(time.Minute)))
	err = suite.repository.ConditionalUpdate(ctx, second, order.Pending)
	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.Equal(0, second.Version())

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(first.Snapshot(), stored.Snapshot())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestConditionalUpdate_ClearsOptionalColumns() {
	ctx := context.Background()
	o := suite.createOrder(kernel.NewUUID(), order.PriorityWait, suite.base)
	suite.Require().NoError(o.Claim(kernel.NewUUID(), suite.base))
	suite.Require().NoError(o.PutOnHold("customer unreachable"))
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.ReturnToQueue())
	suite.Require().NoError(suite.repository.ConditionalUpdate(ctx, o, order.OnHold))

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Pending, stored.Status())
	suite.Nil(stored.AssignedTo())
	suite.Nil(stored.AssignedAt())
	suite.Nil(stored.HoldReason())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	o := suite.createOrder(kernel.NewUUID(), order.PriorityWait, suite.base)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(suite.repository.Delete(ctx, o, order.Pending))

	_, err := suite.repository.Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertCalled(suite.T(), "TrackOrder", mock.MatchedBy(o.IsEqual), true)
	suite.Require().ErrorIs(suite.repository.Delete(ctx, o, order.Pending), errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_StaleVersionConflicts() {
	ctx := context.Background()
	o := suite.createOrder(kernel.NewUUID(), order.PriorityWait, suite.base)
	suite.Require().NoError(o.Claim(kernel.NewUUID(), suite.base.Add(time.Minute)))
	suite.Require().NoError(suite.repository.Add(ctx, o))

	stale, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(o.Complete(suite.base.Add(time.Hour)))
	suite.Require().NoError(suite.repository.ConditionalUpdate(ctx, o, order.InProgress))

	err = suite.repository.Delete(ctx, stale, order.InProgress)

	suite.Require().ErrorIs(err, errs.ErrConflict)
	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Completed, stored.Status())
	suite.tracker.AssertNotCalled(suite.T(), "TrackOrder", mock.Anything, true)
}

func (suite *OrderRepositoryIntegrationTestSuite) createOrder(
	dealershipID kernel.UUID,
	priority order.PriorityClass,
	createdAt time.Time,
) *order.RepairOrder {
	o, err := order.NewRepairOrder(kernel.NewUUID(), "RO-1", "brake noise", dealershipID,
		priority, order.DefaultDifficulty, createdAt)
	suite.Require().NoError(err)
	return o
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
