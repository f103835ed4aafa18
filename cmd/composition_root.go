package cmd

import (
	"log/slog"

	apihttp "dispatch/internal/adapters/in/http"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
)

type CompositionRoot struct {
	cfg        Config
	uowFactory ports.UnitOfWorkFactory
	directory  ports.TechnicianDirectory
	clock      kernel.Clock
	logger     *slog.Logger

	ranker     services.QueueRanker
	dispatcher services.OrderDispatcher
}

func NewCompositionRoot(
	cfg Config,
	uowFactory ports.UnitOfWorkFactory,
	directory ports.TechnicianDirectory,
	clock kernel.Clock,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	policy, err := services.NewEligibilityPolicy(cfg.MaxActiveOrders, cfg.AssignmentCooldown)
	if err != nil {
		return nil, err
	}
	ranker := services.NewQueueRanker(cfg.ReorderEpsilon)

	return &CompositionRoot{
		cfg:        cfg,
		uowFactory: uowFactory,
		directory:  directory,
		clock:      clock,
		logger:     logger,
		ranker:     ranker,
		dispatcher: services.NewOrderDispatcher(ranker, policy),
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uowFactoryFunc() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

// orderReader reads committed state outside of any transaction.
func (c *CompositionRoot) orderReader() queries.OrderReader {
	return c.uowFactory.Create().OrderRepository()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRequestNextOrderCommandHandler() commands.RequestNextOrderCommandHandler {
	return commands.NewRequestNextOrderCommandHandler(
		c.uowFactoryFunc(), c.directory, c.dispatcher, c.clock, c.cfg.ClaimRetryLimit)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.uowFactoryFunc(), c.clock)
}

func (c *CompositionRoot) CreatePutOnHoldCommandHandler() commands.PutOnHoldCommandHandler {
	return commands.NewPutOnHoldCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateResumeOrderCommandHandler() commands.ResumeOrderCommandHandler {
	return commands.NewResumeOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdatePriorityCommandHandler() commands.UpdatePriorityCommandHandler {
	return commands.NewUpdatePriorityCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateDifficultyCommandHandler() commands.UpdateDifficultyCommandHandler {
	return commands.NewUpdateDifficultyCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateReorderOrderCommandHandler() commands.ReorderOrderCommandHandler {
	return commands.NewReorderOrderCommandHandler(c.orderUoWFactory(), c.ranker)
}

func (c *CompositionRoot) CreateReassignOrderCommandHandler() commands.ReassignOrderCommandHandler {
	return commands.NewReassignOrderCommandHandler(
		c.uowFactoryFunc(), c.directory, c.clock, c.cfg.EnforceSkillOnReassign)
}

func (c *CompositionRoot) CreateReturnToQueueCommandHandler() commands.ReturnToQueueCommandHandler {
	return commands.NewReturnToQueueCommandHandler(c.uowFactoryFunc(), c.clock)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetDealershipQueueQueryHandler() queries.GetDealershipQueueQueryHandler {
	return queries.NewGetDealershipQueueQueryHandler(c.orderReader(), c.ranker)
}

func (c *CompositionRoot) CreateGetTechnicianOrdersQueryHandler() queries.GetTechnicianOrdersQueryHandler {
	return queries.NewGetTechnicianOrdersQueryHandler(c.orderReader())
}

// CreateHTTPServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *apihttp.Server {
	return apihttp.NewServer(apihttp.Handlers{
		CreateOrder:         c.CreateCreateOrderCommandHandler(),
		DeleteOrder:         c.CreateDeleteOrderCommandHandler(),
		RequestNextOrder:    c.CreateRequestNextOrderCommandHandler(),
		CompleteOrder:       c.CreateCompleteOrderCommandHandler(),
		PutOnHold:           c.CreatePutOnHoldCommandHandler(),
		ResumeOrder:         c.CreateResumeOrderCommandHandler(),
		UpdatePriority:      c.CreateUpdatePriorityCommandHandler(),
		UpdateDifficulty:    c.CreateUpdateDifficultyCommandHandler(),
		ReorderOrder:        c.CreateReorderOrderCommandHandler(),
		ReassignOrder:       c.CreateReassignOrderCommandHandler(),
		ReturnToQueue:       c.CreateReturnToQueueCommandHandler(),
		GetOrder:            c.CreateGetOrderQueryHandler(),
		GetDealershipQueue:  c.CreateGetDealershipQueueQueryHandler(),
		GetTechnicianOrders: c.CreateGetTechnicianOrdersQueryHandler(),
	}, c.logger)
}

// CreateJobManager registers the queue report for dealerships and, when
// directory can be reloaded, the directory reload job.
func (c *CompositionRoot) CreateJobManager(dealerships jobs.DealershipLister, directory jobs.Reloader) *jobs.JobManager {
	manager := jobs.NewJobManager().Add("queue depth", jobs.NewQueueDepthJob(
		c.CreateGetDealershipQueueQueryHandler(), dealerships, c.clock, c.cfg.QueueReportSchedule, c.logger))
	if directory != nil {
		manager.Add("directory reload", jobs.NewDirectoryReloadJob(directory, c.cfg.DirectoryReloadSchedule, c.logger))
	}
	return manager
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
