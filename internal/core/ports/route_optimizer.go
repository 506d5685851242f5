package ports

import (
	"context"
	"errors"
	"time"

	"medrush/internal/core/domain/model/kernel"
)

// ErrOptimizerUnavailable is returned when the external optimization service
// cannot be reached, rejects the request, or credentials are missing. It is
// fatal for the invoking job; the job runner owns retries.
var ErrOptimizerUnavailable = errors.New("route optimizer unavailable")

// TravelMode selects how the optimizer models vehicle movement.
type TravelMode string

// TravelModeDriving is the only mode used by the dispatch core.
const TravelModeDriving TravelMode = "driving"

// Vehicle is one courier offered to the optimizer, labelled by courier ID.
type Vehicle struct {
	Label      string
	TravelMode TravelMode
}

// Visit is a single pickup or delivery location of a shipment.
type Visit struct {
	Location        kernel.GeoPoint
	ServiceDuration time.Duration
}

// Shipment is one order offered to the optimizer, labelled by order ID,
// with a pickup visit at the order's pickup location and a delivery visit
// at its delivery location.
type Shipment struct {
	Label         string
	PickupVisit   Visit
	DeliveryVisit Visit
}

// VisitStep is one entry of a vehicle's ordered visit sequence.
type VisitStep struct {
	ShipmentLabel string
	IsPickup      bool
	StartTime     time.Time
}

// ShipmentSequence is the collapsed view of one shipment within a vehicle
// route: the 1-based order in which its pickup and its delivery occur,
// counted separately.
type ShipmentSequence struct {
	Label         string
	PickupOrder   *int
	DeliveryOrder *int
}

// VehicleRoute is the optimizer's result for a single vehicle.
type VehicleRoute struct {
	VehicleLabel               string
	Visits                     []VisitStep
	TotalTravelDistanceMeters  float64
	TotalTravelDurationSeconds int64
	RoutePolyline              string
}

// UniqueShipments collapses the visit list to one entry per shipment label,
// preserving first-appearance order. Pickups and deliveries are numbered by
// separate 1-based counters.
func (r VehicleRoute) UniqueShipments() []ShipmentSequence {
	byLabel := make(map[string]*ShipmentSequence)
	ordered := make([]*ShipmentSequence, 0, len(r.Visits))

	pickupCounter := 0
	deliveryCounter := 0

	for _, visit := range r.Visits {
		seq, ok := byLabel[visit.ShipmentLabel]
		if !ok {
			seq = &ShipmentSequence{Label: visit.ShipmentLabel}
			byLabel[visit.ShipmentLabel] = seq
			ordered = append(ordered, seq)
		}

		if visit.IsPickup {
			pickupCounter++
			if seq.PickupOrder == nil {
				position := pickupCounter
				seq.PickupOrder = &position
			}
		} else {
			deliveryCounter++
			if seq.DeliveryOrder == nil {
				position := deliveryCounter
				seq.DeliveryOrder = &position
			}
		}
	}

	result := make([]ShipmentSequence, 0, len(ordered))
	for _, seq := range ordered {
		result = append(result, *seq)
	}
	return result
}

// OptimizationResult is the optimizer's answer for a whole request.
// Validation warnings are advisory; callers log them and proceed.
type OptimizationResult struct {
	Routes             []VehicleRoute
	ValidationWarnings []string
}

// RouteForVehicle returns the route for the given vehicle label, or nil when
// the optimizer produced none.
func (r *OptimizationResult) RouteForVehicle(label string) *VehicleRoute {
	for i := range r.Routes {
		if r.Routes[i].VehicleLabel == label {
			return &r.Routes[i]
		}
	}
	return nil
}

// RouteOptimizer wraps the external route-optimization service. The call
// blocks on the remote service; it is the only suspension point of the jobs
// that use it. Implementations must not retry internally - transient
// failures surface as ErrOptimizerUnavailable and are retried by the job
// runner.
type RouteOptimizer interface {
	Optimize(
		ctx context.Context,
		vehicles []Vehicle,
		shipments []Shipment,
		globalStart time.Time,
		globalEnd time.Time,
	) (*OptimizationResult, error)
}
