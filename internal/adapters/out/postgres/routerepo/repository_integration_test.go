package routerepo_test

import (
	"context"
	"testing"
	"time"

	"medrush/internal/adapters/out/postgres/routerepo"
	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/core/domain/model/route"
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

// RouteRepositoryIntegrationTestSuite provides integration tests for
// RouteRepository, covering chunked stop inserts and position rewrites.
type RouteRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *routerepo.GormRouteRepository
	tracker    *MockAggregateTracker
}

func (suite *RouteRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&routerepo.RouteDTO{}, &routerepo.RouteStopDTO{}))
}

func (suite *RouteRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE routes, route_stops").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = routerepo.NewGormRouteRepository(suite.db, suite.tracker)
}

func (suite *RouteRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RouteRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()

	testRoute := suite.newRoute(3)
	suite.Require().NoError(suite.repository.Add(ctx, testRoute))

	loaded, err := suite.repository.Get(ctx, testRoute.ID())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(testRoute.ID()))
	suite.True(loaded.CourierID().IsEqual(testRoute.CourierID()))
	suite.Equal(testRoute.RouteMetrics(), loaded.RouteMetrics())
	suite.Equal("encoded-polyline", loaded.Polyline())
}

func (suite *RouteRepositoryIntegrationTestSuite) TestGet_NonExistentRoute_ReturnsNotFoundError() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RouteRepositoryIntegrationTestSuite) TestAddStops_ChunkedInsertAndOrderedRead() {
	ctx := context.Background()

	testRoute := suite.newRoute(250)
	suite.Require().NoError(suite.repository.Add(ctx, testRoute))

	// More stops than one insert batch holds.
	stops := make([]*route.Stop, 0, 250)
	for position := 1; position <= 250; position++ {
		stop, err := route.NewOptimizedStop(kernel.NewUUID(), testRoute.ID(), kernel.NewUUID(), position, nil)
		suite.Require().NoError(err)
		stops = append(stops, stop)
	}
	suite.Require().NoError(suite.repository.AddStops(ctx, stops))

	loaded, err := suite.repository.GetStops(ctx, testRoute.ID())
	suite.Require().NoError(err)
	suite.Require().Len(loaded, 250)
	for i, stop := range loaded {
		suite.Equal(i+1, stop.CustomPosition())
		suite.True(stop.IsOptimized())
	}
}

func (suite *RouteRepositoryIntegrationTestSuite) TestUpdateStops_ClearsOptimizedColumns() {
	ctx := context.Background()

	testRoute := suite.newRoute(1)
	suite.Require().NoError(suite.repository.Add(ctx, testRoute))

	stop, err := route.NewOptimizedStop(kernel.NewUUID(), testRoute.ID(), kernel.NewUUID(), 1, intPtr(1))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.AddStops(ctx, []*route.Stop{stop}))

	suite.Require().NoError(stop.PlaceAfterOptimized(4))
	suite.Require().NoError(suite.repository.UpdateStops(ctx, []*route.Stop{stop}))

	loaded, err := suite.repository.GetStops(ctx, testRoute.ID())
	suite.Require().NoError(err)
	suite.Require().Len(loaded, 1)
	suite.Equal(4, loaded[0].CustomPosition())
	suite.False(loaded[0].IsOptimized())
	suite.Nil(loaded[0].OptimizedPosition())
	suite.Nil(loaded[0].PickupPosition())
}

func (suite *RouteRepositoryIntegrationTestSuite) TestUpdate_RecomputedMetricsPersist() {
	ctx := context.Background()

	testRoute := suite.newRoute(2)
	suite.Require().NoError(suite.repository.Add(ctx, testRoute))

	newStart, err := kernel.NewGeoPoint(50.0614, 19.9366)
	suite.Require().NoError(err)
	newEnd, err := kernel.NewGeoPoint(50.0647, 19.9450)
	suite.Require().NoError(err)

	err = testRoute.Recompute(
		newStart,
		newEnd,
		route.Metrics{TotalDistanceMeters: 999, TotalDurationSeconds: 60, StopCount: 2},
		"fresh-polyline",
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, testRoute))

	loaded, err := suite.repository.Get(ctx, testRoute.ID())
	suite.Require().NoError(err)
	suite.Equal("fresh-polyline", loaded.Polyline())
	suite.InDelta(999.0, loaded.RouteMetrics().TotalDistanceMeters, 1e-9)
}

func (suite *RouteRepositoryIntegrationTestSuite) newRoute(stopCount int) *route.Route {
	startPoint, err := kernel.NewGeoPoint(52.2297, 21.0122)
	suite.Require().NoError(err)
	endPoint, err := kernel.NewGeoPoint(52.2512, 21.0521)
	suite.Require().NoError(err)

	r, err := route.NewRoute(
		kernel.NewUUID(),
		kernel.NewUUID(),
		startPoint,
		endPoint,
		route.Metrics{TotalDistanceMeters: 12500, TotalDurationSeconds: 3600, StopCount: stopCount},
		"encoded-polyline",
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return r
}

func intPtr(v int) *int {
	return &v
}

func TestRouteRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RouteRepositoryIntegrationTestSuite))
}
