package cmd

import (
	"context"
	"errors"
	"log/slog"
	"time"

	httpapi "crowddelivery/internal/adapters/in/http"
	"crowddelivery/internal/adapters/in/ws"
	"crowddelivery/internal/adapters/out/persistence"
	"crowddelivery/internal/adapters/out/persistence/chatrepo"
	"crowddelivery/internal/adapters/out/persistence/orderrepo"
	"crowddelivery/internal/core/application/usecases/commands"
	"crowddelivery/internal/core/application/usecases/queries"
	"crowddelivery/internal/core/domain/services"
	"crowddelivery/internal/core/ports"
	"crowddelivery/internal/eventbus"
	"crowddelivery/internal/jobs"
	"crowddelivery/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// Infrastructure holds the long-lived resources the composition root wires
// handlers to. The caller owns them and closes them on shutdown.
type Infrastructure struct {
	DB        *gorm.DB
	Bus       *eventbus.Bus
	Locations ports.LocationCache
	Registry  prometheus.Registerer
	Logger    *slog.Logger

	// Clock defaults to time.Now.
	Clock func() time.Time
}

type CompositionRoot struct {
	cfg    Config
	infra  Infrastructure
	logger *slog.Logger

	uowFactory *persistence.GormUnitOfWorkFactory
	orders     ports.OrderRepository
	calculator services.PriceCalculator

	dispatchMetrics *metrics.Dispatch
	jobMetrics      *metrics.Jobs
	scheduler       *jobs.DeadlineScheduler

	// One chat handler serves every transport so all sends share its order locks.
	sendChat commands.SendChatMessageCommandHandler
}

func NewCompositionRoot(cfg Config, infra Infrastructure) (*CompositionRoot, error) {
	if infra.DB == nil || infra.Bus == nil || infra.Locations == nil {
		return nil, errors.New("composition root needs a database, an event bus and a location cache")
	}
	if infra.Logger == nil {
		infra.Logger = slog.Default()
	}
	if infra.Clock == nil {
		infra.Clock = time.Now
	}

	calculator, err := services.NewPriceCalculator(cfg.Price.Rule())
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:             cfg,
		infra:           infra,
		logger:          infra.Logger,
		uowFactory:      persistence.NewGormUnitOfWorkFactory(infra.DB),
		orders:          orderrepo.NewGormOrderRepository(infra.DB),
		calculator:      calculator,
		dispatchMetrics: metrics.NewDispatch(infra.Registry),
		jobMetrics:      metrics.NewJobs(infra.Registry),
	}

	// Timers expire through a handler that has no scheduler of its own; every other
	// transition handler gets the scheduler to arm and disarm timers.
	expire := commands.NewExpireAcceptWindowCommandHandler(c.dispatchDeps(nil))
	c.scheduler = jobs.NewDeadlineScheduler(func(ctx context.Context, orderID int64) (bool, error) {
		cmd, err := commands.NewExpireAcceptWindowCommand(orderID)
		if err != nil {
			return false, err
		}
		return expire.Handle(ctx, cmd)
	}, c.logger)

	c.sendChat = commands.NewSendChatMessageCommandHandler(
		c.orders, chatrepo.NewGormChatRepository(infra.DB), infra.Bus, c.logger, infra.Clock)

	return c, nil
}

func (c *CompositionRoot) dispatchDeps(scheduler ports.DeadlineScheduler) commands.DispatchDeps {
	return commands.DispatchDeps{
		Orders:    c.orders,
		Publisher: c.infra.Bus,
		Scheduler: scheduler,
		Metrics:   c.dispatchMetrics,
		Logger:    c.logger,
		Clock:     c.infra.Clock,
	}
}

func (c *CompositionRoot) deps() commands.DispatchDeps {
	return c.dispatchDeps(c.scheduler)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return commands.OrderUoWFactoryFunc(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) reportUoWFactory() commands.ReportUoWFactory {
	return commands.ReportUoWFactoryFunc(func() commands.ReportUoW {
		return c.uowFactory.Create()
	})
}

// Scheduler returns the deadline timers shared by every transition handler.
func (c *CompositionRoot) Scheduler() *jobs.DeadlineScheduler {
	return c.scheduler
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.calculator, c.infra.Bus, c.logger, c.infra.Clock)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.deps(), c.cfg.Dispatch.AcceptWindow)
}

func (c *CompositionRoot) CreatePickUpOrderCommandHandler() commands.PickUpOrderCommandHandler {
	return commands.NewPickUpOrderCommandHandler(c.deps())
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.deps())
}

func (c *CompositionRoot) CreateTransferOrderCommandHandler() commands.TransferOrderCommandHandler {
	return commands.NewTransferOrderCommandHandler(c.deps())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.deps())
}

func (c *CompositionRoot) CreateExpireAcceptWindowsCommandHandler() commands.ExpireAcceptWindowsCommandHandler {
	return commands.NewExpireAcceptWindowsCommandHandler(c.deps())
}

func (c *CompositionRoot) CreateSendChatMessageCommandHandler() commands.SendChatMessageCommandHandler {
	return c.sendChat
}

func (c *CompositionRoot) CreateRelayLocationCommandHandler() commands.RelayLocationCommandHandler {
	return commands.NewRelayLocationCommandHandler(c.infra.Locations, c.infra.Bus, c.logger, c.infra.Clock)
}

func (c *CompositionRoot) CreateFileReportCommandHandler() commands.FileReportCommandHandler {
	return commands.NewFileReportCommandHandler(c.reportUoWFactory(), c.infra.Bus, c.logger, c.infra.Clock)
}

func (c *CompositionRoot) CreateReviewReportCommandHandler() commands.ReviewReportCommandHandler {
	return commands.NewReviewReportCommandHandler(c.reportUoWFactory(), c.infra.Bus, c.logger, c.infra.Clock)
}

func (c *CompositionRoot) CreateGetDispatchPoolQueryHandler() queries.GetDispatchPoolQueryHandler {
	return queries.NewGetDispatchPoolQueryHandler(c.infra.DB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.infra.DB)
}

func (c *CompositionRoot) CreateGetChatHistoryQueryHandler() queries.GetChatHistoryQueryHandler {
	return queries.NewGetChatHistoryQueryHandler(c.infra.DB)
}

func (c *CompositionRoot) CreateGetRiderLocationQueryHandler() queries.GetRiderLocationQueryHandler {
	return queries.NewGetRiderLocationQueryHandler(c.infra.Locations)
}

func (c *CompositionRoot) CreateGetPriceRuleQueryHandler() queries.GetPriceRuleQueryHandler {
	return queries.NewGetPriceRuleQueryHandler(c.calculator)
}

// HTTPHandlers returns every use case exposed by the REST API.
func (c *CompositionRoot) HTTPHandlers() httpapi.Handlers {
	return httpapi.Handlers{
		CreateOrder:   c.CreateCreateOrderCommandHandler(),
		AcceptOrder:   c.CreateAcceptOrderCommandHandler(),
		PickUpOrder:   c.CreatePickUpOrderCommandHandler(),
		DeliverOrder:  c.CreateDeliverOrderCommandHandler(),
		TransferOrder: c.CreateTransferOrderCommandHandler(),
		CancelOrder:   c.CreateCancelOrderCommandHandler(),
		SendChat:      c.CreateSendChatMessageCommandHandler(),
		RelayLocation: c.CreateRelayLocationCommandHandler(),
		FileReport:    c.CreateFileReportCommandHandler(),
		ReviewReport:  c.CreateReviewReportCommandHandler(),
		DispatchPool:  c.CreateGetDispatchPoolQueryHandler(),
		GetOrder:      c.CreateGetOrderQueryHandler(),
		ChatHistory:   c.CreateGetChatHistoryQueryHandler(),
		RiderLocation: c.CreateGetRiderLocationQueryHandler(),
		PriceRule:     c.CreateGetPriceRuleQueryHandler(),
	}
}

// WSHandlers returns the commands reachable over the websocket gateway.
func (c *CompositionRoot) WSHandlers() ws.Handlers {
	return ws.Handlers{
		AcceptOrder:   c.CreateAcceptOrderCommandHandler(),
		RelayLocation: c.CreateRelayLocationCommandHandler(),
		SendChat:      c.CreateSendChatMessageCommandHandler(),
	}
}

// CreateJobManager wires the recovery sweep, the periodic sweep and the timers.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	sweep := jobs.NewAcceptWindowSweepJob(
		c.CreateExpireAcceptWindowsCommandHandler(), c.cfg.Dispatch.SweepSpec, c.jobMetrics, c.logger)
	return jobs.NewJobManager(c.orders, c.scheduler, sweep, c.logger)
}
