package cmd

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/eventlog"
	"dispatch/internal/adapters/out/kafka"
	"dispatch/internal/adapters/out/redislock"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
	"dispatch/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory ports.UnitOfWorkFactory
	metrics    *metrics.Metrics
	logger     *slog.Logger

	orderRng   *rand.Rand
	courierRng *lockedRand
}

// NewCompositionRoot wires handlers over uowFactory. gormDB backs the read side
// and may be nil when only commands are used.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	uowFactory ports.UnitOfWorkFactory,
	m *metrics.Metrics,
	logger *slog.Logger,
) *CompositionRoot {
	seed := cfg.RandomSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) //nolint:gosec // not a security boundary
	}

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: uowFactory,
		metrics:    m,
		logger:     logger,
		orderRng:   rand.New(rand.NewPCG(seed, 1)),                     //nolint:gosec // grid locations
		courierRng: &lockedRand{rng: rand.New(rand.NewPCG(seed, 2))}, //nolint:gosec // grid locations
	}
}

func (c *CompositionRoot) CreateAddCourierStorageCommandHandler() commands.AddCourierStorageCommandHandler {
	return commands.NewAddCourierStorageCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.orderRng)
}

func (c *CompositionRoot) CreateMoveCouriersCommandHandler() commands.MoveCouriersCommandHandler {
	return commands.NewMoveCouriersCommandHandler(c.uowFactoryForCycles())
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.uowFactoryForCycles(), services.NewOrderDispatcher())
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.gormDB)
}

// CourierLocation draws the starting location of a newly registered courier.
func (c *CompositionRoot) CourierLocation() (kernel.Location, error) {
	return c.courierRng.location()
}

func (c *CompositionRoot) CreateHTTPRouter() *echo.Echo {
	server := httpin.NewServer(
		c.CreateCreateCourierCommandHandler(),
		c.CreateCreateOrderCommandHandler(),
		c.CreateAddCourierStorageCommandHandler(),
		c.CreateGetAllCouriersQueryHandler(),
		c.CreateGetUncompletedOrdersQueryHandler(),
		c.CourierLocation,
		c.metrics,
		c.logger,
	)
	return httpin.NewRouter(server, c.metrics)
}

// CreateJobManager schedules both cycles. locker may be nil for a single instance.
func (c *CompositionRoot) CreateJobManager(locker *redislock.Locker) *jobs.JobManager {
	opts := []jobs.Option{jobs.WithMetrics(c.metrics)}
	if locker != nil {
		opts = append(opts, jobs.WithLocker(CycleLocker{locker: locker}))
	}

	return jobs.NewJobManager(
		jobs.Schedules{Assign: c.cfg.AssignSchedule, Move: c.cfg.MoveSchedule},
		c.CreateMoveCouriersCommandHandler(),
		c.CreateAssignCourierCommandHandler(),
		c.logger,
		opts...,
	)
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uowFactoryForCycles() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

// NewEventPublisher returns the Kafka publisher when brokers are configured and
// a logging publisher otherwise. The returned close function is never nil.
func NewEventPublisher(cfg Config, logger *slog.Logger) (ports.EventPublisher, func() error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("kafka brokers not configured, order events are only logged")
		return eventlog.NewPublisher(logger), func() error { return nil }
	}

	p := kafka.NewPublisher(kafka.Config{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaOrderChangedTopic,
	}, logger)
	return p, p.Close
}

// CycleLocker adapts redislock.Locker to jobs.Locker.
type CycleLocker struct {
	locker *redislock.Locker
}

func (l CycleLocker) TryLock(ctx context.Context, name string) (jobs.Lease, error) {
	lease, err := l.locker.TryLock(ctx, name)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, nil //nolint:nilnil // held by another instance
	}
	return lease, nil
}

type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (r *lockedRand) location() (kernel.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return kernel.NewRandomLocation(r.rng)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
