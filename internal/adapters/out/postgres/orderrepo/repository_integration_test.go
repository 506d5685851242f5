package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"medrush/internal/adapters/out/postgres/orderrepo"
	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/core/domain/model/order"
	"medrush/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderEventDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_events").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()

	testOrder, _ := suite.newPendingOrder("warsaw", "00-001")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(loaded.ID().IsEqual(testOrder.ID()))
	suite.Equal(order.StatusPending, loaded.Status())
	suite.Equal("warsaw", loaded.Region())
	suite.Equal("00-001", loaded.PostalCode())
	suite.InDelta(testOrder.PickupLocation().Latitude(), loaded.PickupLocation().Latitude(), 1e-9)
	suite.InDelta(testOrder.DeliveryLocation().Longitude(), loaded.DeliveryLocation().Longitude(), 1e-9)
	suite.Nil(loaded.Courier())
	suite.Nil(loaded.AssignedAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AssignmentRoundTrip() {
	ctx := context.Background()

	testOrder, _ := suite.newPendingOrder("warsaw", "")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	courierID := kernel.NewUUID()
	event, err := testOrder.ApplyEvent(order.EventCourierAssigned, nil, nil, nil, &courierID, false)
	suite.Require().NoError(err)
	suite.Require().NotNil(event)

	suite.Require().NoError(suite.repository.Update(ctx, testOrder))
	suite.Require().NoError(suite.repository.AddEvent(ctx, event))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusAssigned, loaded.Status())
	suite.Require().NotNil(loaded.Courier())
	suite.True(loaded.Courier().IsEqual(courierID))
	suite.NotNil(loaded.AssignedAt())

	var eventCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderEventDTO{}).Count(&eventCount).Error)
	suite.Equal(int64(1), eventCount)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_WithdrawalClearsCourierColumns() {
	ctx := context.Background()

	testOrder, _ := suite.newPendingOrder("warsaw", "")
	courierID := kernel.NewUUID()
	_, err := testOrder.ApplyEvent(order.EventCourierAssigned, nil, nil, nil, &courierID, false)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	event, err := testOrder.ApplyEvent(order.EventAssignmentWithdrawn, nil, nil, nil, nil, true)
	suite.Require().NoError(err)
	suite.Require().NotNil(event)
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusPending, loaded.Status())
	suite.Nil(loaded.Courier())
	suite.Nil(loaded.AssignedAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()

	testOrder, _ := suite.newPendingOrder("warsaw", "")
	err := suite.repository.Update(ctx, testOrder)
	suite.Require().Error(err)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetPendingUnassigned_FiltersByRegionAndPostalCode() {
	ctx := context.Background()

	matching, _ := suite.newPendingOrder("warsaw", "00-001")
	wrongPostal, _ := suite.newPendingOrder("warsaw", "99-999")
	wrongRegion, _ := suite.newPendingOrder("krakow", "00-001")

	assigned, _ := suite.newPendingOrder("warsaw", "00-001")
	courierID := kernel.NewUUID()
	_, err := assigned.ApplyEvent(order.EventCourierAssigned, nil, nil, nil, &courierID, false)
	suite.Require().NoError(err)

	for _, o := range []*order.Order{matching, wrongPostal, wrongRegion, assigned} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	result, err := suite.repository.GetPendingUnassigned(ctx, "warsaw", []string{"00-001"})
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID().IsEqual(matching.ID()))

	// Without the postal filter the wrong-postal order qualifies too.
	result, err = suite.repository.GetPendingUnassigned(ctx, "warsaw", nil)
	suite.Require().NoError(err)
	suite.Len(result, 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByIDs_SkipsMissing() {
	ctx := context.Background()

	first, _ := suite.newPendingOrder("warsaw", "")
	second, _ := suite.newPendingOrder("warsaw", "")
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	result, err := suite.repository.GetByIDs(ctx, []kernel.UUID{first.ID(), second.ID(), kernel.NewUUID()})
	suite.Require().NoError(err)
	suite.Len(result, 2)

	result, err = suite.repository.GetByIDs(ctx, nil)
	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetEvents_ReturnsLogOldestFirst() {
	ctx := context.Background()

	testOrder, created := suite.newPendingOrder("warsaw", "00-001")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))
	suite.Require().NoError(suite.repository.AddEvent(ctx, created))

	courierID := kernel.NewUUID()
	assigned, err := testOrder.ApplyEvent(order.EventCourierAssigned, nil, nil, nil, &courierID, false)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))
	suite.Require().NoError(suite.repository.AddEvent(ctx, assigned))

	actorID := kernel.NewUUID()
	location, err := kernel.NewGeoPoint(52.2319, 21.0067)
	suite.Require().NoError(err)
	pickedUp, err := testOrder.ApplyEvent(
		order.EventPickedUp, &actorID, map[string]string{"notes": "left reception"}, &location, nil, false)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))
	suite.Require().NoError(suite.repository.AddEvent(ctx, pickedUp))

	events, err := suite.repository.GetEvents(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().Len(events, 3)

	suite.Equal(order.EventCreated, events[0].Type())
	suite.Equal(order.EventCourierAssigned, events[1].Type())
	suite.Equal(order.EventPickedUp, events[2].Type())

	suite.Require().NotNil(events[2].ActorID())
	suite.True(events[2].ActorID().IsEqual(actorID))
	suite.Equal("left reception", events[2].Metadata()["notes"])
	suite.Require().NotNil(events[2].Location())
	suite.InDelta(52.2319, events[2].Location().Latitude(), 1e-9)

	other, err := suite.repository.GetEvents(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Empty(other)
}

func (suite *OrderRepositoryIntegrationTestSuite) newPendingOrder(region, postalCode string) (*order.Order, *order.Event) {
	pickup, err := kernel.NewGeoPoint(52.2297, 21.0122)
	suite.Require().NoError(err)
	delivery, err := kernel.NewGeoPoint(52.2512, 21.0521)
	suite.Require().NoError(err)

	o, evt, err := order.NewOrder(kernel.NewUUID(), pickup, delivery, region, postalCode)
	suite.Require().NoError(err)
	return o, evt
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
