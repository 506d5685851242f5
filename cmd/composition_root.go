package cmd

import (
	"log/slog"

	httpadapter "medrush/internal/adapters/in/http"
	"medrush/internal/adapters/out/postgres"
	"medrush/internal/core/application/usecases/commands"
	"medrush/internal/core/application/usecases/queries"
	"medrush/internal/core/ports"
	"medrush/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	optimizer   ports.RouteOptimizer
	routeLocker ports.RouteLocker
	logger      *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	optimizer ports.RouteOptimizer,
	routeLocker ports.RouteLocker,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		optimizer:   optimizer,
		routeLocker: routeLocker,
		logger:      logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateApplyOrderEventCommandHandler() commands.ApplyOrderEventCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyOrderEventCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignPendingOrdersCommandHandler() commands.AssignPendingOrdersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignPendingOrdersCommandHandler(f, c.optimizer, c.logger)
}

func (c *CompositionRoot) CreateReoptimizeRouteCommandHandler() commands.ReoptimizeRouteCommandHandler {
	var f commands.RouteUoWFactory = FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReoptimizeRouteCommandHandler(f, c.optimizer, c.routeLocker, c.logger)
}

func (c *CompositionRoot) CreateReorderRouteStopsCommandHandler() commands.ReorderRouteStopsCommandHandler {
	var f commands.RouteUoWFactory = FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReorderRouteStopsCommandHandler(f, c.routeLocker, c.logger)
}

func (c *CompositionRoot) CreateGetPendingOrdersQueryHandler() queries.GetPendingOrdersQueryHandler {
	return queries.NewGetPendingOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRouteStopsQueryHandler() queries.GetRouteStopsQueryHandler {
	return queries.NewGetRouteStopsQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every command and query handler into the inbound
// HTTP adapter. Long-running dispatch operations go through the runner.
func (c *CompositionRoot) CreateHTTPServer(runner *jobs.Runner) *httpadapter.Server {
	createOrder := c.CreateCreateOrderCommandHandler()
	createCourier := c.CreateCreateCourierCommandHandler()
	applyEvent := c.CreateApplyOrderEventCommandHandler()
	reorderStops := c.CreateReorderRouteStopsCommandHandler()
	assignPending := c.CreateAssignPendingOrdersCommandHandler()
	reoptimize := c.CreateReoptimizeRouteCommandHandler()
	pendingOrders := c.CreateGetPendingOrdersQueryHandler()
	routeStops := c.CreateGetRouteStopsQueryHandler()

	return httpadapter.NewServer(
		&createOrder,
		&createCourier,
		&applyEvent,
		&reorderStops,
		&assignPending,
		&reoptimize,
		pendingOrders,
		routeStops,
		runner,
	)
}

// CreateJobManager wires the scheduled batch assignment job.
func (c *CompositionRoot) CreateJobManager(runner *jobs.Runner) *jobs.JobManager {
	assignPending := c.CreateAssignPendingOrdersCommandHandler()

	return jobs.NewJobManager(&assignPending, runner, jobs.BatchAssignmentConfig{
		Schedule:       c.config.AssignmentSchedule,
		Regions:        c.config.AssignmentRegions,
		CourierMinLoad: c.config.CourierMinLoad,
		CourierMaxLoad: c.config.CourierMaxLoad,
		WindowDuration: c.config.AssignmentWindow,
	}, c.logger)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncRouteUoWFactory func() commands.RouteUoW

func (f FuncRouteUoWFactory) Create() commands.RouteUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
