package commands

import (
	"context"
	"log/slog"
	"time"

	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/core/domain/model/order"
	"medrush/internal/core/domain/model/route"
	"medrush/internal/core/ports"
)

// routeLockTTL bounds how long a crashed job can keep a route lease.
const routeLockTTL = 5 * time.Minute

// ReoptimizeRouteCommandHandler re-sequences the stops of a single route.
// Only stops whose orders are still Assigned are offered to the optimizer;
// stops already picked up, delivered, failed or cancelled keep their place
// at the tail of the sequence. The whole rewrite commits atomically.
type ReoptimizeRouteCommandHandler struct {
	uowFactory  RouteUoWFactory
	optimizer   ports.RouteOptimizer
	routeLocker ports.RouteLocker
	logger      *slog.Logger
}

// NewReoptimizeRouteCommandHandler creates a route re-optimization handler.
func NewReoptimizeRouteCommandHandler(
	uowFactory RouteUoWFactory,
	optimizer ports.RouteOptimizer,
	routeLocker ports.RouteLocker,
	logger *slog.Logger,
) ReoptimizeRouteCommandHandler {
	return ReoptimizeRouteCommandHandler{
		uowFactory:  uowFactory,
		optimizer:   optimizer,
		routeLocker: routeLocker,
		logger:      logger.With("component", "reoptimize_route"),
	}
}

// Handle processes one re-optimization run.
//
// The route lease serializes this run against concurrent reorders of the
// same route; ports.ErrRouteLocked means another job holds it and the run
// is safe to retry. A route with no re-sequencable stops, or an optimizer
// response with no usable route, is a clean no-op leaving the prior stop
// ordering untouched.
func (h *ReoptimizeRouteCommandHandler) Handle(ctx context.Context, cmd ReoptimizeRouteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	lock, err := h.routeLocker.AcquireRouteLock(ctx, cmd.RouteID(), routeLockTTL)
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.Release(ctx)
	}()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	routeRepo := uow.RouteRepository()

	target, err := routeRepo.Get(ctx, cmd.RouteID())
	if err != nil {
		return err
	}
	stops, err := routeRepo.GetStops(ctx, cmd.RouteID())
	if err != nil {
		return err
	}

	orderByLabel, err := h.loadOrders(ctx, uow.OrderRepository(), stops)
	if err != nil {
		return err
	}

	assignedOrders := assignedOrdersOf(stops, orderByLabel)
	if len(assignedOrders) == 0 {
		h.logger.Warn("route has no re-sequencable stops, skipping",
			"route_id", cmd.RouteID().String(), "stops", len(stops))
		return nil
	}

	vehicleLabel := target.CourierID().String()
	vehicles := []ports.Vehicle{{Label: vehicleLabel, TravelMode: ports.TravelModeDriving}}
	shipments, _ := buildShipments(assignedOrders)

	result, err := h.optimizer.Optimize(ctx, vehicles, shipments, cmd.WindowStart(), cmd.WindowEnd().Add(windowEndBuffer))
	if err != nil {
		return err
	}

	for _, warning := range result.ValidationWarnings {
		h.logger.Warn("optimizer validation warning", "route_id", cmd.RouteID().String(), "warning", warning)
	}

	vehicleRoute := result.RouteForVehicle(vehicleLabel)
	if vehicleRoute == nil || len(vehicleRoute.Visits) == 0 {
		h.logger.Warn("optimizer returned no usable route, keeping prior ordering",
			"route_id", cmd.RouteID().String())
		return nil
	}

	resequenced, err := resequenceStops(stops, orderByLabel, vehicleRoute)
	if err != nil {
		return err
	}
	if err = route.ValidatePositions(stops); err != nil {
		return err
	}

	startPoint, err := visitLocation(vehicleRoute.Visits[0], orderByLabel)
	if err != nil {
		return err
	}
	endPoint, err := visitLocation(vehicleRoute.Visits[len(vehicleRoute.Visits)-1], orderByLabel)
	if err != nil {
		return err
	}

	err = target.Recompute(
		startPoint,
		endPoint,
		route.Metrics{
			TotalDistanceMeters:  vehicleRoute.TotalTravelDistanceMeters,
			TotalDurationSeconds: vehicleRoute.TotalTravelDurationSeconds,
			StopCount:            len(stops),
		},
		vehicleRoute.RoutePolyline,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = routeRepo.UpdateStops(ctx, stops); err != nil {
		return err
	}
	if err = routeRepo.Update(ctx, target); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("route re-optimized",
		"route_id", cmd.RouteID().String(), "stops", len(stops), "resequenced", resequenced)
	return nil
}

func (h *ReoptimizeRouteCommandHandler) loadOrders(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	stops []*route.Stop,
) (map[string]*order.Order, error) {
	ids := make([]kernel.UUID, 0, len(stops))
	for _, stop := range stops {
		ids = append(ids, stop.OrderID())
	}

	orders, err := orderRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byLabel := make(map[string]*order.Order, len(orders))
	for _, o := range orders {
		byLabel[o.ID().String()] = o
	}
	return byLabel, nil
}

// assignedOrdersOf returns the orders still eligible for re-sequencing, in
// the current stop order.
func assignedOrdersOf(stops []*route.Stop, orderByLabel map[string]*order.Order) []*order.Order {
	assigned := make([]*order.Order, 0, len(stops))
	for _, stop := range stops {
		stopOrder, ok := orderByLabel[stop.OrderID().String()]
		if ok && stopOrder.Status() == order.StatusAssigned {
			assigned = append(assigned, stopOrder)
		}
	}
	return assigned
}

// resequenceStops rewrites stop positions from the optimizer response.
// Stops the optimizer positioned take their delivery-order index; everything
// else keeps its original relative order after them, so positions stay
// contiguous from 1 with no gaps. Returns the number of optimizer-positioned
// stops.
func resequenceStops(
	stops []*route.Stop,
	orderByLabel map[string]*order.Order,
	vehicleRoute *ports.VehicleRoute,
) (int, error) {
	seqByLabel := make(map[string]ports.ShipmentSequence)
	for _, seq := range vehicleRoute.UniqueShipments() {
		seqByLabel[seq.Label] = seq
	}

	optimized := 0
	leftovers := make([]*route.Stop, 0, len(stops))

	for _, stop := range stops {
		label := stop.OrderID().String()
		stopOrder, isLoaded := orderByLabel[label]

		if isLoaded && stopOrder.Status() == order.StatusAssigned {
			if seq, ok := seqByLabel[label]; ok && seq.DeliveryOrder != nil {
				if err := stop.ApplyOptimizedPosition(*seq.DeliveryOrder, seq.PickupOrder); err != nil {
					return 0, err
				}
				optimized++
				continue
			}
		}
		leftovers = append(leftovers, stop)
	}

	nextPosition := optimized + 1
	for _, stop := range leftovers {
		if err := stop.PlaceAfterOptimized(nextPosition); err != nil {
			return 0, err
		}
		nextPosition++
	}

	return optimized, nil
}
