package route

import (
	"errors"
	"fmt"
	"sort"

	"medrush/internal/core/domain/model/kernel"
)

// ErrStopIsNotConstructed is returned when a Stop instance was not created
// through NewOptimizedStop or RestoreStop.
var ErrStopIsNotConstructed = errors.New("Stop must be created via NewOptimizedStop or RestoreStop")

// ErrStopPositionsNotContiguous indicates that a route's custom positions do
// not form the contiguous range [1..N] without duplicates.
var ErrStopPositionsNotContiguous = errors.New("route stop custom positions must form a contiguous 1..N range")

// Stop joins a route with one of its orders and carries three independent
// position fields:
//
//   - optimized position: written only by an optimizer run, nil otherwise
//   - custom position: the dispatcher-visible ordering, always set
//   - pickup position: only meaningful when pickup and delivery are not
//     co-located, nil otherwise
//
// Invariant (per route): the set of custom positions is exactly [1..N] with
// no duplicates, where N is the stop count. ValidatePositions checks it.
type Stop struct {
	id      kernel.UUID
	routeID kernel.UUID
	orderID kernel.UUID

	optimizedPosition *int
	customPosition    int
	pickupPosition    *int
	isOptimized       bool

	isConstructed bool
}

// NewOptimizedStop creates a stop from an optimizer visit: the delivery
// order index becomes both the optimized and the custom position.
func NewOptimizedStop(
	id kernel.UUID,
	routeID kernel.UUID,
	orderID kernel.UUID,
	deliveryPosition int,
	pickupPosition *int,
) (*Stop, error) {
	if err := errors.Join(id.Validate(), routeID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	optimized := deliveryPosition
	return &Stop{
		id:                id,
		routeID:           routeID,
		orderID:           orderID,
		optimizedPosition: &optimized,
		customPosition:    deliveryPosition,
		pickupPosition:    pickupPosition,
		isOptimized:       true,
		isConstructed:     true,
	}, nil
}

// RestoreStop reconstructs a stop from persistence.
func RestoreStop(
	id kernel.UUID,
	routeID kernel.UUID,
	orderID kernel.UUID,
	optimizedPosition *int,
	customPosition int,
	pickupPosition *int,
	isOptimized bool,
) (*Stop, error) {
	if err := errors.Join(id.Validate(), routeID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	return &Stop{
		id:                id,
		routeID:           routeID,
		orderID:           orderID,
		optimizedPosition: optimizedPosition,
		customPosition:    customPosition,
		pickupPosition:    pickupPosition,
		isOptimized:       isOptimized,
		isConstructed:     true,
	}, nil
}

// Validate ensures the Stop was built through a constructor.
func (s *Stop) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStopIsNotConstructed
	}
	return nil
}

// ID returns the stop's unique identifier.
func (s *Stop) ID() kernel.UUID {
	return s.id
}

// RouteID returns the route the stop belongs to.
func (s *Stop) RouteID() kernel.UUID {
	return s.routeID
}

// OrderID returns the order visited at this stop.
func (s *Stop) OrderID() kernel.UUID {
	return s.orderID
}

// OptimizedPosition returns the position assigned by the last optimizer run,
// or nil if the stop was never optimized or fell out of the last run.
func (s *Stop) OptimizedPosition() *int {
	return s.optimizedPosition
}

// CustomPosition returns the dispatcher-visible position of the stop.
func (s *Stop) CustomPosition() int {
	return s.customPosition
}

// PickupPosition returns the 1-based pickup visit order, or nil when pickup
// and delivery are co-located.
func (s *Stop) PickupPosition() *int {
	return s.pickupPosition
}

// IsOptimized reports whether the current ordering of this stop came from an
// optimizer run rather than a manual edit or fallback placement.
func (s *Stop) IsOptimized() bool {
	return s.isOptimized
}

// ApplyOptimizedPosition overwrites the stop's ordering with a fresh
// optimizer result, aligning the custom position with the optimized one.
func (s *Stop) ApplyOptimizedPosition(deliveryPosition int, pickupPosition *int) error {
	if err := s.Validate(); err != nil {
		return err
	}

	optimized := deliveryPosition
	s.optimizedPosition = &optimized
	s.customPosition = deliveryPosition
	s.pickupPosition = pickupPosition
	s.isOptimized = true
	return nil
}

// PlaceAfterOptimized positions a stop that the optimizer did not sequence:
// the stop keeps its place after all optimized ones and loses any stale
// optimizer data.
func (s *Stop) PlaceAfterOptimized(customPosition int) error {
	if err := s.Validate(); err != nil {
		return err
	}

	s.optimizedPosition = nil
	s.pickupPosition = nil
	s.customPosition = customPosition
	s.isOptimized = false
	return nil
}

// MoveTo applies a manually computed custom position to the stop.
func (s *Stop) MoveTo(customPosition int) error {
	if err := s.Validate(); err != nil {
		return err
	}

	s.customPosition = customPosition
	s.isOptimized = false
	return nil
}

// ValidatePositions checks the per-route invariant: custom positions form
// the contiguous range [1..N] with no duplicates.
func ValidatePositions(stops []*Stop) error {
	positions := make([]int, 0, len(stops))
	for _, s := range stops {
		if err := s.Validate(); err != nil {
			return err
		}
		positions = append(positions, s.customPosition)
	}

	sort.Ints(positions)
	for i, p := range positions {
		if p != i+1 {
			return fmt.Errorf("%w: got %v", ErrStopPositionsNotContiguous, positions)
		}
	}
	return nil
}
