package commands

import (
	"errors"
	"time"

	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/pkg/guard"
)

var ErrReoptimizeRouteCommandIsNotConstructed = errors.New(
	"ReoptimizeRouteCommand must be created via NewReoptimizeRouteCommand constructor",
)

// ReoptimizeRouteCommand represents a request to re-sequence the stops of
// one existing route, typically after manual edits or traffic changes.
type ReoptimizeRouteCommand struct { //nolint:recvcheck //using for validation
	routeID     kernel.UUID
	windowStart time.Time
	windowEnd   time.Time

	guard guard.ConstructorGuard
}

// NewReoptimizeRouteCommand creates a re-optimization command for a route.
func NewReoptimizeRouteCommand(
	routeID kernel.UUID,
	windowStart time.Time,
	windowEnd time.Time,
) (ReoptimizeRouteCommand, error) {
	reoptimizeCommand := ReoptimizeRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := routeID.Validate(); err != nil {
		return ReoptimizeRouteCommand{}, err
	}
	if !windowEnd.After(windowStart) {
		return ReoptimizeRouteCommand{}, ErrWindowIsInvalid
	}

	reoptimizeCommand.routeID = routeID
	reoptimizeCommand.windowStart = windowStart
	reoptimizeCommand.windowEnd = windowEnd
	return reoptimizeCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReoptimizeRouteCommand) Validate() error {
	return c.guard.Validate(ErrReoptimizeRouteCommandIsNotConstructed)
}

// RouteID returns the identifier of the route being re-optimized.
func (c ReoptimizeRouteCommand) RouteID() kernel.UUID {
	return c.routeID
}

// WindowStart returns the start of the delivery window.
func (c ReoptimizeRouteCommand) WindowStart() time.Time {
	return c.windowStart
}

// WindowEnd returns the end of the delivery window.
func (c ReoptimizeRouteCommand) WindowEnd() time.Time {
	return c.windowEnd
}
