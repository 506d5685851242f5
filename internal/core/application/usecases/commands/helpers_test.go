package commands_test

import (
	"testing"
	"time"

	"medrush/internal/core/domain/model/courier"
	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/core/domain/model/order"
	"medrush/internal/core/domain/model/route"

	"github.com/stretchr/testify/require"
)

func mustGeoPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return point
}

func newPendingOrder(t *testing.T, region string) *order.Order {
	t.Helper()
	o, _, err := order.NewOrder(
		kernel.NewUUID(),
		mustGeoPoint(t, 52.23, 21.01),
		mustGeoPoint(t, 52.25, 21.05),
		region,
		"00-001",
	)
	require.NoError(t, err)
	return o
}

func restoreOrderInStatus(t *testing.T, status order.Status, courierID *kernel.UUID) *order.Order {
	t.Helper()

	var assignedAt *time.Time
	if courierID != nil {
		at := time.Now().UTC().Add(-time.Hour)
		assignedAt = &at
	}

	o, err := order.RestoreOrder(
		kernel.NewUUID(),
		mustGeoPoint(t, 52.23, 21.01),
		mustGeoPoint(t, 52.25, 21.05),
		"warsaw",
		"00-001",
		status,
		courierID,
		assignedAt,
		nil,
		nil,
		"",
		"",
	)
	require.NoError(t, err)
	return o
}

func newTestCourier(t *testing.T, region string) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), "Anna Nowak", region)
	require.NoError(t, err)
	return c
}

func newTestRoute(t *testing.T, courierID kernel.UUID, stopCount int) *route.Route {
	t.Helper()
	r, err := route.NewRoute(
		kernel.NewUUID(),
		courierID,
		mustGeoPoint(t, 52.20, 21.00),
		mustGeoPoint(t, 52.30, 21.10),
		route.Metrics{TotalDistanceMeters: 12500, TotalDurationSeconds: 3600, StopCount: stopCount},
		"encoded-polyline",
		time.Now().UTC().Add(-2*time.Hour),
	)
	require.NoError(t, err)
	return r
}

func newOptimizedStop(t *testing.T, routeID, orderID kernel.UUID, position int) *route.Stop {
	t.Helper()
	stop, err := route.NewOptimizedStop(kernel.NewUUID(), routeID, orderID, position, intPtr(position))
	require.NoError(t, err)
	return stop
}

func intPtr(v int) *int {
	return &v
}
