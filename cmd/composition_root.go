package cmd

import (
	"database/sql"
	"log/slog"
	"time"

	httpadapter "luggage/internal/adapters/in/http"
	"luggage/internal/adapters/out/metrics"
	"luggage/internal/adapters/out/postgres"
	"luggage/internal/adapters/out/postgres/orderrepo"
	"luggage/internal/core/application/usecases/commands"
	"luggage/internal/core/application/usecases/queries"
	"luggage/internal/core/domain/model/kernel"
	"luggage/internal/core/domain/services"
	"luggage/internal/core/ports"
	"luggage/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	clock      ports.Clock
	calendar   kernel.ShopCalendar
	engine     *services.PricingEngine
	lifecycle  *services.OrderLifecycle
	metrics    *metrics.Recorder
	retrier    *postgres.Retrier
	uowFactory *postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	calendar, err := cfg.ShopCalendar()
	if err != nil {
		return nil, err
	}
	engine, err := services.NewPricingEngine(calendar)
	if err != nil {
		return nil, err
	}
	lifecycle, err := services.NewOrderLifecycle(engine)
	if err != nil {
		return nil, err
	}

	recorder := metrics.NewRecorder()
	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     logger,
		clock:      ports.ClockFunc(time.Now),
		calendar:   calendar,
		engine:     engine,
		lifecycle:  lifecycle,
		metrics:    recorder,
		retrier:    postgres.NewRetrier(cfg.TxMaxRetries, logger, postgres.WithRetryObserver(recorder)),
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, recorder),
	}, nil
}

func (c *CompositionRoot) Metrics() *metrics.Recorder {
	return c.metrics
}

func (c *CompositionRoot) Calendar() kernel.ShopCalendar {
	return c.calendar
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) counterUoWFactory() commands.CounterUoWFactory {
	return FuncCounterUoWFactory(func() commands.CounterUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) cashClosingUoWFactory() commands.CashClosingUoWFactory {
	return FuncCashClosingUoWFactory(func() commands.CashClosingUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) retentionUoWFactory() commands.RetentionUoWFactory {
	return FuncRetentionUoWFactory(func() commands.RetentionUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(c.orderUoWFactory(), c.retrier, c.lifecycle, c.clock)
}

func (c *CompositionRoot) CreateMarkOrderPaidCommandHandler() commands.MarkOrderPaidCommandHandler {
	return commands.NewMarkOrderPaidCommandHandler(c.orderUoWFactory(), c.retrier, c.engine)
}

func (c *CompositionRoot) CreateCompletePickupCommandHandler() commands.CompletePickupCommandHandler {
	return commands.NewCompletePickupCommandHandler(c.orderUoWFactory(), c.retrier, c.lifecycle, c.clock)
}

func (c *CompositionRoot) CreateUndoPickupCommandHandler() commands.UndoPickupCommandHandler {
	return commands.NewUndoPickupCommandHandler(c.orderUoWFactory(), c.retrier)
}

func (c *CompositionRoot) CreateEditPickupScheduleCommandHandler() commands.EditPickupScheduleCommandHandler {
	return commands.NewEditPickupScheduleCommandHandler(c.orderUoWFactory(), c.retrier, c.lifecycle)
}

func (c *CompositionRoot) CreateRecalculatePrepaidCommandHandler() commands.RecalculatePrepaidCommandHandler {
	return commands.NewRecalculatePrepaidCommandHandler(c.orderUoWFactory(), c.retrier, c.lifecycle)
}

func (c *CompositionRoot) CreateNextSequenceCommandHandler() commands.NextSequenceCommandHandler {
	return commands.NewNextSequenceCommandHandler(c.counterUoWFactory(), c.retrier)
}

func (c *CompositionRoot) CreateCreateCashClosingCommandHandler() commands.CreateCashClosingCommandHandler {
	return commands.NewCreateCashClosingCommandHandler(c.cashClosingUoWFactory(), c.retrier, c.calendar, c.clock)
}

func (c *CompositionRoot) CreateUpdateCashClosingCommandHandler() commands.UpdateCashClosingCommandHandler {
	return commands.NewUpdateCashClosingCommandHandler(c.cashClosingUoWFactory(), c.retrier, c.calendar, c.clock)
}

func (c *CompositionRoot) CreateSubmitCashClosingCommandHandler() commands.SubmitCashClosingCommandHandler {
	return commands.NewSubmitCashClosingCommandHandler(c.cashClosingUoWFactory(), c.retrier, c.clock)
}

func (c *CompositionRoot) CreateVerifyCashClosingCommandHandler() commands.VerifyCashClosingCommandHandler {
	return commands.NewVerifyCashClosingCommandHandler(c.cashClosingUoWFactory(), c.retrier, c.clock)
}

func (c *CompositionRoot) CreatePurgeExpiredOrdersCommandHandler() commands.PurgeExpiredOrdersCommandHandler {
	return commands.NewPurgeExpiredOrdersCommandHandler(c.retentionUoWFactory(), c.retrier)
}

func (c *CompositionRoot) CreateGetDailySalesQueryHandler() queries.GetDailySalesQueryHandler {
	return queries.NewGetDailySalesQueryHandler(orderrepo.NewGormSalesLedger(c.gormDB), c.calendar)
}

func (c *CompositionRoot) CreateGetSalesForPeriodQueryHandler() queries.GetSalesForPeriodQueryHandler {
	return queries.NewGetSalesForPeriodQueryHandler(orderrepo.NewGormSalesLedger(c.gormDB), c.calendar)
}

func (c *CompositionRoot) CreateGetCashClosingAuditTrailQueryHandler() queries.GetCashClosingAuditTrailQueryHandler {
	return queries.NewGetCashClosingAuditTrailQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	purge := c.CreatePurgeExpiredOrdersCommandHandler()
	retention, err := jobs.NewRetentionJob(
		&purge, c.clock, c.cfg.RetentionPeriod(), c.cfg.RetentionCron, c.metrics, c.logger,
	)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(retention), nil
}

func (c *CompositionRoot) CreateHTTPServer(sqlDB *sql.DB) *httpadapter.Server {
	return httpadapter.NewServer(sqlDB, c.metrics)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCounterUoWFactory func() commands.CounterUoW

func (f FuncCounterUoWFactory) Create() commands.CounterUoW {
	return f()
}

type FuncCashClosingUoWFactory func() commands.CashClosingUoW

func (f FuncCashClosingUoWFactory) Create() commands.CashClosingUoW {
	return f()
}

type FuncRetentionUoWFactory func() commands.RetentionUoW

func (f FuncRetentionUoWFactory) Create() commands.RetentionUoW {
	return f()
}
