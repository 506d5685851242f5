package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"medrush/internal/core/domain/model/courier"
	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/core/domain/model/order"
	"medrush/internal/core/domain/model/route"
	"medrush/internal/core/ports"
)

const (
	// windowEndBuffer is added to the requested delivery window end so the
	// optimizer has slack to place the last visits.
	windowEndBuffer = time.Hour

	// deliveryServiceDuration is the fixed handover time at a delivery visit.
	deliveryServiceDuration = 120 * time.Second
)

var (
	// ErrVehicleLabelMismatch indicates the optimizer returned a vehicle
	// that was never requested. This is a data-integrity bug, not a
	// transient condition, and aborts the run without partial commits.
	ErrVehicleLabelMismatch = errors.New("optimizer returned an unknown vehicle label")

	// ErrShipmentLabelMismatch indicates the optimizer returned a visit for
	// a shipment that was never requested.
	ErrShipmentLabelMismatch = errors.New("optimizer returned an unknown shipment label")
)

// VehicleLabelMismatchError carries the offending label for diagnostics.
type VehicleLabelMismatchError struct {
	Label string
}

func (e *VehicleLabelMismatchError) Error() string {
	return fmt.Sprintf("%s: %s", ErrVehicleLabelMismatch, e.Label)
}

func (e *VehicleLabelMismatchError) Unwrap() error {
	return ErrVehicleLabelMismatch
}

// ShipmentLabelMismatchError carries the offending label for diagnostics.
type ShipmentLabelMismatchError struct {
	Label string
}

func (e *ShipmentLabelMismatchError) Error() string {
	return fmt.Sprintf("%s: %s", ErrShipmentLabelMismatch, e.Label)
}

func (e *ShipmentLabelMismatchError) Unwrap() error {
	return ErrShipmentLabelMismatch
}

// AssignPendingOrdersCommandHandler materializes optimized courier routes
// out of a region's pending order backlog. It selects couriers, sends one
// batched request to the route optimizer, creates a route with stops per
// used vehicle and transitions every routed order to Assigned.
//
// All writes of one run share a single transaction. Stop inserts are
// chunked inside it purely to bound statement size.
type AssignPendingOrdersCommandHandler struct {
	uowFactory UoWFactory
	optimizer  ports.RouteOptimizer
	logger     *slog.Logger
}

// NewAssignPendingOrdersCommandHandler creates a batch assignment handler.
func NewAssignPendingOrdersCommandHandler(
	uowFactory UoWFactory,
	optimizer ports.RouteOptimizer,
	logger *slog.Logger,
) AssignPendingOrdersCommandHandler {
	return AssignPendingOrdersCommandHandler{
		uowFactory: uowFactory,
		optimizer:  optimizer,
		logger:     logger.With("component", "assign_pending_orders"),
	}
}

// Handle processes one batch assignment run.
//
// A region with no pending unassigned orders, or no registered couriers, is
// a clean no-op. Optimizer failure aborts the run with no writes; the job
// runner decides whether to retry. An optimizer response naming a vehicle
// outside the request fails with ErrVehicleLabelMismatch.
func (h *AssignPendingOrdersCommandHandler) Handle(ctx context.Context, cmd AssignPendingOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	pending, err := orderRepo.GetPendingUnassigned(ctx, cmd.Region(), cmd.PostalCodes())
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		h.logger.Info("no pending orders, nothing to assign", "region", cmd.Region())
		return nil
	}

	couriersNeeded := courierCount(len(pending), cmd.CourierMinLoad(), cmd.CourierMaxLoad())

	couriers, err := uow.CourierRepository().GetByRegion(ctx, cmd.Region(), couriersNeeded)
	if err != nil {
		return err
	}
	if len(couriers) == 0 {
		h.logger.Warn("no couriers registered in region, skipping run",
			"region", cmd.Region(), "pending_orders", len(pending))
		return nil
	}

	vehicles, courierByLabel := buildVehicles(couriers)
	shipments, orderByLabel := buildShipments(pending)

	result, err := h.optimizer.Optimize(ctx, vehicles, shipments, cmd.WindowStart(), cmd.WindowEnd().Add(windowEndBuffer))
	if err != nil {
		return err
	}

	for _, warning := range result.ValidationWarnings {
		h.logger.Warn("optimizer validation warning", "region", cmd.Region(), "warning", warning)
	}

	routeRepo := uow.RouteRepository()
	assignedTotal := 0

	for i := range result.Routes {
		vehicleRoute := &result.Routes[i]

		assignedCourier, ok := courierByLabel[vehicleRoute.VehicleLabel]
		if !ok {
			return &VehicleLabelMismatchError{Label: vehicleRoute.VehicleLabel}
		}
		if len(vehicleRoute.Visits) == 0 {
			continue
		}

		assigned, err := h.materializeRoute(ctx, routeRepo, orderRepo, assignedCourier, vehicleRoute, orderByLabel)
		if err != nil {
			return err
		}
		assignedTotal += assigned
	}

	if assignedTotal == 0 {
		h.logger.Warn("optimizer produced no usable routes", "region", cmd.Region(), "pending_orders", len(pending))
		return nil
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("batch assignment completed",
		"region", cmd.Region(), "orders_assigned", assignedTotal, "couriers_requested", couriersNeeded)
	return nil
}

// materializeRoute creates the route and stops for one used vehicle and
// transitions every routed order to Assigned. Returns the number of orders
// assigned.
func (h *AssignPendingOrdersCommandHandler) materializeRoute(
	ctx context.Context,
	routeRepo ports.RouteRepository,
	orderRepo ports.OrderRepository,
	assignedCourier *courier.Courier,
	vehicleRoute *ports.VehicleRoute,
	orderByLabel map[string]*order.Order,
) (int, error) {
	startPoint, err := visitLocation(vehicleRoute.Visits[0], orderByLabel)
	if err != nil {
		return 0, err
	}
	endPoint, err := visitLocation(vehicleRoute.Visits[len(vehicleRoute.Visits)-1], orderByLabel)
	if err != nil {
		return 0, err
	}

	shipmentSeqs := vehicleRoute.UniqueShipments()

	newRoute, err := route.NewRoute(
		kernel.NewUUID(),
		assignedCourier.ID(),
		startPoint,
		endPoint,
		route.Metrics{
			TotalDistanceMeters:  vehicleRoute.TotalTravelDistanceMeters,
			TotalDurationSeconds: vehicleRoute.TotalTravelDurationSeconds,
			StopCount:            len(shipmentSeqs),
		},
		vehicleRoute.RoutePolyline,
		time.Now().UTC(),
	)
	if err != nil {
		return 0, err
	}

	stops := make([]*route.Stop, 0, len(shipmentSeqs))
	courierID := assignedCourier.ID()

	for _, seq := range shipmentSeqs {
		if seq.DeliveryOrder == nil {
			continue
		}

		routedOrder, ok := orderByLabel[seq.Label]
		if !ok {
			return 0, &ShipmentLabelMismatchError{Label: seq.Label}
		}

		stop, err := route.NewOptimizedStop(kernel.NewUUID(), newRoute.ID(), routedOrder.ID(), *seq.DeliveryOrder, seq.PickupOrder)
		if err != nil {
			return 0, err
		}
		stops = append(stops, stop)

		event, err := routedOrder.ApplyEvent(order.EventCourierAssigned, nil, nil, nil, &courierID, false)
		if err != nil {
			return 0, err
		}
		if event == nil {
			continue
		}
		if err = orderRepo.Update(ctx, routedOrder); err != nil {
			return 0, err
		}
		if err = orderRepo.AddEvent(ctx, event); err != nil {
			return 0, err
		}
	}

	if err = routeRepo.Add(ctx, newRoute); err != nil {
		return 0, err
	}
	if err = routeRepo.AddStops(ctx, stops); err != nil {
		return 0, err
	}

	return len(stops), nil
}

// courierCount sizes the courier selection so the average of the load
// bounds covers the backlog, never requesting fewer than one.
func courierCount(totalOrders, minLoad, maxLoad int) int {
	averageLoad := (minLoad + maxLoad) / 2
	if averageLoad <= 0 {
		return 1
	}

	needed := (totalOrders + averageLoad - 1) / averageLoad
	if needed < 1 {
		return 1
	}
	return needed
}

func buildVehicles(couriers []*courier.Courier) ([]ports.Vehicle, map[string]*courier.Courier) {
	vehicles := make([]ports.Vehicle, 0, len(couriers))
	byLabel := make(map[string]*courier.Courier, len(couriers))

	for _, c := range couriers {
		label := c.ID().String()
		vehicles = append(vehicles, ports.Vehicle{
			Label:      label,
			TravelMode: ports.TravelModeDriving,
		})
		byLabel[label] = c
	}
	return vehicles, byLabel
}

func buildShipments(orders []*order.Order) ([]ports.Shipment, map[string]*order.Order) {
	shipments := make([]ports.Shipment, 0, len(orders))
	byLabel := make(map[string]*order.Order, len(orders))

	for _, o := range orders {
		label := o.ID().String()
		shipments = append(shipments, ports.Shipment{
			Label:       label,
			PickupVisit: ports.Visit{Location: o.PickupLocation()},
			DeliveryVisit: ports.Visit{
				Location:        o.DeliveryLocation(),
				ServiceDuration: deliveryServiceDuration,
			},
		})
		byLabel[label] = o
	}
	return shipments, byLabel
}

// visitLocation resolves a visit to the pickup or delivery point of its
// shipment's order.
func visitLocation(visit ports.VisitStep, orderByLabel map[string]*order.Order) (kernel.GeoPoint, error) {
	visitedOrder, ok := orderByLabel[visit.ShipmentLabel]
	if !ok {
		return kernel.GeoPoint{}, &ShipmentLabelMismatchError{Label: visit.ShipmentLabel}
	}

	if visit.IsPickup {
		return visitedOrder.PickupLocation(), nil
	}
	return visitedOrder.DeliveryLocation(), nil
}
