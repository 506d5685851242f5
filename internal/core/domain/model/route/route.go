package route

import (
	"errors"
	"time"

	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/pkg/errs"
)

// ErrRouteIsNotConstructed is returned when a Route instance was not created
// through NewRoute or RestoreRoute.
var ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute or RestoreRoute")

// Metrics holds the aggregate figures reported by an optimizer run for one
// vehicle.
type Metrics struct {
	TotalDistanceMeters  float64
	TotalDurationSeconds int64
	StopCount            int
}

// Route is the aggregate root for a courier's multi-stop delivery run.
// A route is created by batch assignment, re-sequenced by reoptimization and
// by manual stop reordering, and owns its stops. The started/completed
// timestamps are managed by the courier-facing collaborators, not by the
// dispatch core.
type Route struct {
	id        kernel.UUID
	courierID kernel.UUID

	startPoint kernel.GeoPoint
	endPoint   kernel.GeoPoint

	metrics  Metrics
	polyline string

	computedAt  time.Time
	startedAt   *time.Time
	completedAt *time.Time

	isConstructed bool
}

// NewRoute creates a route materialized from an optimizer vehicle result.
func NewRoute(
	id kernel.UUID,
	courierID kernel.UUID,
	startPoint kernel.GeoPoint,
	endPoint kernel.GeoPoint,
	metrics Metrics,
	polyline string,
	computedAt time.Time,
) (*Route, error) {
	r := &Route{
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		courierID.Validate(),
		startPoint.Validate(),
		endPoint.Validate(),
	); err != nil {
		return nil, err
	}
	if metrics.StopCount <= 0 {
		return nil, errs.NewValueIsInvalidError("stop count must be positive")
	}

	r.id = id
	r.courierID = courierID
	r.startPoint = startPoint
	r.endPoint = endPoint
	r.metrics = metrics
	r.polyline = polyline
	r.computedAt = computedAt

	return r, nil
}

// RestoreRoute reconstructs a route aggregate from persistence.
func RestoreRoute(
	id kernel.UUID,
	courierID kernel.UUID,
	startPoint kernel.GeoPoint,
	endPoint kernel.GeoPoint,
	metrics Metrics,
	polyline string,
	computedAt time.Time,
	startedAt *time.Time,
	completedAt *time.Time,
) (*Route, error) {
	r, err := NewRoute(id, courierID, startPoint, endPoint, metrics, polyline, computedAt)
	if err != nil {
		return nil, err
	}

	r.startedAt = startedAt
	r.completedAt = completedAt
	return r, nil
}

// Validate ensures the Route was built through a constructor.
func (r *Route) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRouteIsNotConstructed
	}
	return nil
}

// ID returns the route's unique identifier.
func (r *Route) ID() kernel.UUID {
	return r.id
}

// CourierID returns the courier the route is assigned to.
func (r *Route) CourierID() kernel.UUID {
	return r.courierID
}

// StartPoint returns the location of the route's first visit.
func (r *Route) StartPoint() kernel.GeoPoint {
	return r.startPoint
}

// EndPoint returns the location of the route's last visit.
func (r *Route) EndPoint() kernel.GeoPoint {
	return r.endPoint
}

// RouteMetrics returns the aggregate figures of the last optimizer run.
func (r *Route) RouteMetrics() Metrics {
	return r.metrics
}

// Polyline returns the encoded path of the route (opaque to this core).
func (r *Route) Polyline() string {
	return r.polyline
}

// ComputedAt returns when the route was last computed by the optimizer.
func (r *Route) ComputedAt() time.Time {
	return r.computedAt
}

// StartedAt returns when the courier started the route, or nil.
func (r *Route) StartedAt() *time.Time {
	return r.startedAt
}

// CompletedAt returns when the courier completed the route, or nil.
func (r *Route) CompletedAt() *time.Time {
	return r.completedAt
}

// Recompute replaces the route geometry and metrics after a reoptimization run.
func (r *Route) Recompute(
	startPoint kernel.GeoPoint,
	endPoint kernel.GeoPoint,
	metrics Metrics,
	polyline string,
	computedAt time.Time,
) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := errors.Join(startPoint.Validate(), endPoint.Validate()); err != nil {
		return err
	}
	if metrics.StopCount <= 0 {
		return errs.NewValueIsInvalidError("stop count must be positive")
	}

	r.startPoint = startPoint
	r.endPoint = endPoint
	r.metrics = metrics
	r.polyline = polyline
	r.computedAt = computedAt
	return nil
}
