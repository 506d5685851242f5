package queries

import (
	"errors"

	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/pkg/guard"
)

var ErrGetRouteStopsQueryIsNotConstructed = errors.New(
	"GetRouteStopsQuery must be created via NewGetRouteStopsQuery constructor",
)

// GetRouteStopsQuery retrieves the stops of one route in serving order,
// joined with the current status of each stop's order. This is the view a
// dispatcher reorders against.
type GetRouteStopsQuery struct {
	routeID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRouteStopsQuery creates a query for a route's stop sequence.
func NewGetRouteStopsQuery(routeID kernel.UUID) (GetRouteStopsQuery, error) {
	if err := routeID.Validate(); err != nil {
		return GetRouteStopsQuery{}, err
	}

	return GetRouteStopsQuery{
		routeID: routeID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRouteStopsQuery) Validate() error {
	return q.guard.Validate(ErrGetRouteStopsQueryIsNotConstructed)
}

// RouteID returns the identifier of the route being queried.
func (q GetRouteStopsQuery) RouteID() kernel.UUID {
	return q.routeID
}

// GetRouteStopsQueryResponse represents one stop of the route, in serving
// order. OptimizedPosition and PickupPosition are nil for stops placed
// manually or preserved at the tail after a re-optimization.
type GetRouteStopsQueryResponse struct {
	StopID            kernel.UUID
	OrderID           kernel.UUID
	OrderStatus       string
	CustomPosition    int
	OptimizedPosition *int
	PickupPosition    *int
	IsOptimized       bool
}
