package commands

import (
	"context"
	"log/slog"

	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/core/domain/model/route"
	"medrush/internal/core/domain/services"
	"medrush/internal/core/ports"
	"medrush/internal/pkg/errs"
)

// ReorderRouteStopsCommandHandler applies a dispatcher's manual stop order
// to a route. Position values are computed by the sequence calculator, so
// the request is rejected wholesale on conflicting positions and no partial
// ordering is ever written.
type ReorderRouteStopsCommandHandler struct {
	uowFactory  RouteUoWFactory
	routeLocker ports.RouteLocker
	calculator  services.ManualSequenceCalculator
	logger      *slog.Logger
}

// NewReorderRouteStopsCommandHandler creates a manual reorder handler.
func NewReorderRouteStopsCommandHandler(
	uowFactory RouteUoWFactory,
	routeLocker ports.RouteLocker,
	logger *slog.Logger,
) ReorderRouteStopsCommandHandler {
	return ReorderRouteStopsCommandHandler{
		uowFactory:  uowFactory,
		routeLocker: routeLocker,
		calculator:  services.NewManualSequenceCalculator(),
		logger:      logger.With("component", "reorder_route_stops"),
	}
}

// Handle processes one manual reorder.
//
// Every stop id named in the request must belong to the route; an unknown
// id fails with errs.ErrObjectNotFound before any computation. The route
// lease serializes the reorder against a re-optimization job running on
// the same route.
func (h *ReorderRouteStopsCommandHandler) Handle(ctx context.Context, cmd ReorderRouteStopsCommand) error {
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

	stops, err := routeRepo.GetStops(ctx, cmd.RouteID())
	if err != nil {
		return err
	}

	stopByID := make(map[kernel.UUID]*route.Stop, len(stops))
	itemIDs := make([]kernel.UUID, 0, len(stops))
	for _, stop := range stops {
		stopByID[stop.ID()] = stop
		itemIDs = append(itemIDs, stop.ID())
	}

	for stopID := range cmd.Positions() {
		if _, ok := stopByID[stopID]; !ok {
			return errs.NewObjectNotFoundError("stopID", stopID.String())
		}
	}

	sequence, err := h.calculator.ComputeOrder(itemIDs, cmd.Positions())
	if err != nil {
		return err
	}

	for _, item := range sequence {
		stop := stopByID[item.ID]
		// Stops the reorder did not move keep their optimizer provenance.
		if item.Position == stop.CustomPosition() {
			continue
		}
		if err = stop.MoveTo(item.Position); err != nil {
			return err
		}
	}

	if err = routeRepo.UpdateStops(ctx, stops); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("route stops reordered",
		"route_id", cmd.RouteID().String(), "stops", len(stops), "explicit_positions", len(cmd.Positions()))
	return nil
}
