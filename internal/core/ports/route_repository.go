package ports

import (
	"context"

	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/core/domain/model/route"
)

// RouteRepository defines the persistence contract for routes and their
// stops. Stop writes are bulk operations: AddStops inserts in fixed-size
// chunks to bound per-statement payload size (the chunking happens inside
// the ambient transaction and does not weaken atomicity), and UpdateStops
// updates each stop keyed by its identity.
type RouteRepository interface {
	// Add persists a new route.
	Add(ctx context.Context, aggregate *route.Route) error

	// Update persists changes to an existing route.
	Update(ctx context.Context, aggregate *route.Route) error

	// Get retrieves a route by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*route.Route, error)

	// AddStops bulk-inserts route stops in fixed-size batches.
	AddStops(ctx context.Context, stops []*route.Stop) error

	// UpdateStops persists position changes for existing stops.
	UpdateStops(ctx context.Context, stops []*route.Stop) error

	// GetStops retrieves all stops of a route ordered by custom position.
	GetStops(ctx context.Context, routeID kernel.UUID) ([]*route.Stop, error)
}
