package commands

import (
	"errors"

	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/pkg/guard"
)

var (
	ErrReorderRouteStopsCommandIsNotConstructed = errors.New(
		"ReorderRouteStopsCommand must be created via NewReorderRouteStopsCommand constructor",
	)
	ErrPositionsAreRequired = errors.New("at least one explicit position is required")
)

// ReorderRouteStopsCommand represents a dispatcher's manual reordering of a
// route: a sparse map of stop ids to requested positions. Stops not named
// in the map keep their relative order and flow into the remaining slots.
type ReorderRouteStopsCommand struct { //nolint:recvcheck //using for validation
	routeID   kernel.UUID
	positions map[kernel.UUID]int

	guard guard.ConstructorGuard
}

// NewReorderRouteStopsCommand creates a manual reorder command.
func NewReorderRouteStopsCommand(
	routeID kernel.UUID,
	positions map[kernel.UUID]int,
) (ReorderRouteStopsCommand, error) {
	reorderCommand := ReorderRouteStopsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := routeID.Validate(); err != nil {
		return ReorderRouteStopsCommand{}, err
	}
	if len(positions) == 0 {
		return ReorderRouteStopsCommand{}, ErrPositionsAreRequired
	}

	reorderCommand.routeID = routeID
	reorderCommand.positions = positions
	return reorderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReorderRouteStopsCommand) Validate() error {
	return c.guard.Validate(ErrReorderRouteStopsCommandIsNotConstructed)
}

// RouteID returns the identifier of the route being reordered.
func (c ReorderRouteStopsCommand) RouteID() kernel.UUID {
	return c.routeID
}

// Positions returns the requested stop positions keyed by stop id.
func (c ReorderRouteStopsCommand) Positions() map[kernel.UUID]int {
	return c.positions
}
