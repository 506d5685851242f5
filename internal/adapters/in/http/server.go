// Package http is the inbound HTTP adapter. It translates dispatcher and
// courier requests into commands and queries, and long-running optimization
// work into jobs on the async runner.
package http

import (
	"context"
	"errors"
	"net/http"

	"medrush/internal/core/application/usecases/commands"
	"medrush/internal/core/application/usecases/queries"
	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/core/domain/model/order"
	"medrush/internal/core/domain/services"
	"medrush/internal/core/ports"
	"medrush/internal/jobs"
	"medrush/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// orderActionEvents maps the action segment of an order action URL to the
// lifecycle event it drives.
var orderActionEvents = map[string]order.EventType{
	"assign":   order.EventCourierAssigned,
	"reassign": order.EventCourierReassigned,
	"pickup":   order.EventPickedUp,
	"depart":   order.EventDeparted,
	"deliver":  order.EventDelivered,
	"fail":     order.EventDeliveryFailed,
	"cancel":   order.EventCancelled,
	"withdraw": order.EventAssignmentWithdrawn,
}

type createOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
}

type createCourierHandler interface {
	Handle(ctx context.Context, cmd commands.CreateCourierCommand) error
}

type applyOrderEventHandler interface {
	Handle(ctx context.Context, cmd commands.ApplyOrderEventCommand) error
}

type reorderRouteStopsHandler interface {
	Handle(ctx context.Context, cmd commands.ReorderRouteStopsCommand) error
}

type assignPendingOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.AssignPendingOrdersCommand) error
}

type reoptimizeRouteHandler interface {
	Handle(ctx context.Context, cmd commands.ReoptimizeRouteCommand) error
}

type getPendingOrdersHandler interface {
	Handle(ctx context.Context, query queries.GetPendingOrdersQuery) ([]queries.GetPendingOrdersQueryResponse, error)
}

type getRouteStopsHandler interface {
	Handle(ctx context.Context, query queries.GetRouteStopsQuery) ([]queries.GetRouteStopsQueryResponse, error)
}

type jobSubmitter interface {
	Submit(name string, job jobs.Job)
}

// Server coordinates between HTTP handlers and application use cases.
// Batch assignment and reoptimization requests are accepted, submitted to
// the job runner and answered immediately; everything else is synchronous.
type Server struct {
	createOrder   createOrderHandler
	createCourier createCourierHandler
	applyEvent    applyOrderEventHandler
	reorderStops  reorderRouteStopsHandler
	assignPending assignPendingOrdersHandler
	reoptimize    reoptimizeRouteHandler

	pendingOrders getPendingOrdersHandler
	routeStops    getRouteStopsHandler

	runner jobSubmitter
}

// NewServer creates an HTTP server with the required command, query and job
// dependencies.
func NewServer(
	createOrder createOrderHandler,
	createCourier createCourierHandler,
	applyEvent applyOrderEventHandler,
	reorderStops reorderRouteStopsHandler,
	assignPending assignPendingOrdersHandler,
	reoptimize reoptimizeRouteHandler,
	pendingOrders getPendingOrdersHandler,
	routeStops getRouteStopsHandler,
	runner jobSubmitter,
) *Server {
	return &Server{
		createOrder:   createOrder,
		createCourier: createCourier,
		applyEvent:    applyEvent,
		reorderStops:  reorderStops,
		assignPending: assignPending,
		reoptimize:    reoptimize,
		pendingOrders: pendingOrders,
		routeStops:    routeStops,
		runner:        runner,
	}
}

// RegisterRoutes binds every endpoint on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/actions/:action", s.ApplyOrderAction)
	api.GET("/orders/pending", s.GetPendingOrders)
	api.POST("/couriers", s.CreateCourier)
	api.GET("/routes/:id/stops", s.GetRouteStops)
	api.POST("/routes/:id/stops/reorder", s.ReorderRouteStops)
	api.POST("/routes/:id/reoptimize", s.ReoptimizeRoute)
	api.POST("/dispatch/assignments", s.DispatchAssignments)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - registers a new delivery order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	pickup, err := req.PickupLocation.toDomain()
	if err != nil {
		return badRequest(ctx, "invalid pickup location: "+err.Error())
	}
	delivery, err := req.DeliveryLocation.toDomain()
	if err != nil {
		return badRequest(ctx, "invalid delivery location: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, pickup, delivery, req.Region, req.PostalCode)
	if err != nil {
		return badRequest(ctx, "invalid order data: "+err.Error())
	}

	if err = s.createOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: orderID.String()})
}

// CreateCourier handles POST /api/v1/couriers - registers a new courier.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var req createCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	courierID := kernel.NewUUID()
	cmd, err := commands.NewCreateCourierCommand(courierID, req.Name, req.Region)
	if err != nil {
		return badRequest(ctx, "invalid courier data: "+err.Error())
	}

	if err = s.createCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: courierID.String()})
}

// ApplyOrderAction handles POST /api/v1/orders/:id/actions/:action - drives
// one order through a lifecycle transition.
func (s *Server) ApplyOrderAction(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	eventType, ok := orderActionEvents[ctx.Param("action")]
	if !ok {
		return badRequest(ctx, "unknown order action: "+ctx.Param("action"))
	}

	var req orderActionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewApplyOrderEventCommand(orderID, eventType)
	if err != nil {
		return badRequest(ctx, "invalid action data: "+err.Error())
	}

	if req.ActorID != "" {
		actorID, parseErr := kernel.UUIDFromString(req.ActorID)
		if parseErr != nil {
			return badRequest(ctx, "invalid actor id")
		}
		cmd = cmd.WithActor(actorID)
	}

	if req.CourierID != "" {
		courierID, parseErr := kernel.UUIDFromString(req.CourierID)
		if parseErr != nil {
			return badRequest(ctx, "invalid courier id")
		}
		cmd = cmd.WithCourier(courierID)
	}

	if req.Location != nil {
		location, locErr := req.Location.toDomain()
		if locErr != nil {
			return badRequest(ctx, "invalid location: "+locErr.Error())
		}
		cmd = cmd.WithLocation(location)
	}

	if req.Reason != "" || req.Notes != "" {
		cmd = cmd.WithMetadata(map[string]string{
			order.MetadataKeyReason: req.Reason,
			order.MetadataKeyNotes:  req.Notes,
		})
	}

	if eventType == order.EventAssignmentWithdrawn {
		cmd = cmd.WithClearCourier()
	}

	if err = s.applyEvent.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReorderRouteStops handles POST /api/v1/routes/:id/stops/reorder - applies
// a dispatcher's explicit stop positions to the route.
func (s *Server) ReorderRouteStops(ctx echo.Context) error {
	routeID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid route id")
	}

	var req reorderStopsRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	positions := make(map[kernel.UUID]int, len(req.Positions))
	for rawID, position := range req.Positions {
		stopID, parseErr := kernel.UUIDFromString(rawID)
		if parseErr != nil {
			return badRequest(ctx, "invalid stop id: "+rawID)
		}
		positions[stopID] = position
	}

	cmd, err := commands.NewReorderRouteStopsCommand(routeID, positions)
	if err != nil {
		return badRequest(ctx, "invalid reorder data: "+err.Error())
	}

	if err = s.reorderStops.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DispatchAssignments handles POST /api/v1/dispatch/assignments - submits a
// batch assignment run for a region to the job runner.
func (s *Server) DispatchAssignments(ctx echo.Context) error {
	var req dispatchAssignmentsRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewAssignPendingOrdersCommand(
		req.Region,
		req.CourierMinLoad,
		req.CourierMaxLoad,
		req.WindowStart,
		req.WindowEnd,
		req.PostalCodes,
	)
	if err != nil {
		return badRequest(ctx, "invalid assignment request: "+err.Error())
	}

	jobName := "batch_assignment/" + req.Region
	s.runner.Submit(jobName, func(jobCtx context.Context) error {
		return s.assignPending.Handle(jobCtx, cmd)
	})

	return ctx.JSON(http.StatusAccepted, jobAcceptedResponse{Job: jobName})
}

// ReoptimizeRoute handles POST /api/v1/routes/:id/reoptimize - submits a
// reoptimization run for one route to the job runner.
func (s *Server) ReoptimizeRoute(ctx echo.Context) error {
	routeID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid route id")
	}

	var req reoptimizeRouteRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewReoptimizeRouteCommand(routeID, req.WindowStart, req.WindowEnd)
	if err != nil {
		return badRequest(ctx, "invalid reoptimization request: "+err.Error())
	}

	jobName := "reoptimize_route/" + routeID.String()
	s.runner.Submit(jobName, func(jobCtx context.Context) error {
		return s.reoptimize.Handle(jobCtx, cmd)
	})

	return ctx.JSON(http.StatusAccepted, jobAcceptedResponse{Job: jobName})
}

// GetPendingOrders handles GET /api/v1/orders/pending?region= - lists a
// region's unassigned backlog.
func (s *Server) GetPendingOrders(ctx echo.Context) error {
	query, err := queries.NewGetPendingOrdersQuery(ctx.QueryParam("region"))
	if err != nil {
		return badRequest(ctx, "invalid query: "+err.Error())
	}

	orders, err := s.pendingOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]pendingOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = pendingOrderResponse{
			ID: o.ID.String(),
			PickupLocation: locationResponse{
				Latitude:  o.PickupLocation.Latitude(),
				Longitude: o.PickupLocation.Longitude(),
			},
			DeliveryLocation: locationResponse{
				Latitude:  o.DeliveryLocation.Latitude(),
				Longitude: o.DeliveryLocation.Longitude(),
			},
			PostalCode: o.PostalCode,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetRouteStops handles GET /api/v1/routes/:id/stops - returns the route's
// stops in serving order with the current status of each order.
func (s *Server) GetRouteStops(ctx echo.Context) error {
	routeID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid route id")
	}

	query, err := queries.NewGetRouteStopsQuery(routeID)
	if err != nil {
		return badRequest(ctx, "invalid query: "+err.Error())
	}

	stops, err := s.routeStops.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]routeStopResponse, len(stops))
	for i, stop := range stops {
		response[i] = routeStopResponse{
			StopID:            stop.StopID.String(),
			OrderID:           stop.OrderID.String(),
			OrderStatus:       stop.OrderStatus,
			CustomPosition:    stop.CustomPosition,
			OptimizedPosition: stop.OptimizedPosition,
			PickupPosition:    stop.PickupPosition,
			IsOptimized:       stop.IsOptimized,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorResponse maps use case failures onto HTTP statuses: unknown objects
// are 404, rejected transitions and held route locks are 409, invalid input
// is 400 and everything else is a 500.
func errorResponse(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, ports.ErrRouteLocked):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, services.ErrDuplicateExplicitPosition),
		errors.Is(err, services.ErrInsufficientFreePositions),
		errors.Is(err, services.ErrDuplicateComputedPosition):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal server error",
		})
	}
}
