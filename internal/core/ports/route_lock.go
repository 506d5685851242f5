package ports

import (
	"context"
	"errors"
	"time"

	"medrush/internal/core/domain/model/kernel"
)

// ErrRouteLocked indicates that another job currently holds the advisory
// lock for the route. The failed attempt is safe to retry.
var ErrRouteLocked = errors.New("route is locked by another job")

// RouteLock is a held advisory lease on a route.
type RouteLock interface {
	// Release frees the lease. Releasing an expired lease is not an error.
	Release(ctx context.Context) error
}

// RouteLocker serializes mutating jobs on the same route (reoptimization
// racing a manual reorder). The lease expires after ttl so a crashed job
// cannot wedge its route.
type RouteLocker interface {
	AcquireRouteLock(ctx context.Context, routeID kernel.UUID, ttl time.Duration) (RouteLock, error)
}
