// Command simulate runs the dispatch cycles against an in-memory store. It
// registers a few couriers and orders from a fixed seed, then alternates the
// assignment and movement cycles and logs the state after every tick until all
// orders are delivered.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"dispatch/cmd"
	"dispatch/internal/adapters/out/eventlog"
	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/metrics"
)

type fleetMember struct {
	name  string
	speed int
}

var fleet = []fleetMember{
	{name: "Walker", speed: 1},
	{name: "Cyclist", speed: 2},
	{name: "Driver", speed: 3},
}

func main() {
	seed := flag.Uint64("seed", 7, "random seed for order and courier locations")
	orders := flag.Int("orders", 5, "number of orders to create")
	maxTicks := flag.Int("ticks", 50, "upper bound on simulated ticks")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := simulate(context.Background(), logger, *seed, *orders, *maxTicks); err != nil {
		logger.Error("simulation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func simulate(ctx context.Context, logger *slog.Logger, seed uint64, orderCount, maxTicks int) error {
	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store, eventlog.NewPublisher(logger), logger)
	app := cmd.NewCompositionRoot(cmd.Config{RandomSeed: seed}, nil, factory, metrics.New(), logger)

	courierIDs, err := registerCouriers(ctx, app)
	if err != nil {
		return err
	}

	createOrder := app.CreateCreateOrderCommandHandler()
	orderIDs := make([]kernel.UUID, 0, orderCount)
	for i := range orderCount {
		c, err := commands.NewCreateOrderCommand(kernel.NewUUID(), fmt.Sprintf("Street %d", i+1), 1+i%3*4)
		if err != nil {
			return err
		}
		if err = createOrder.Handle(ctx, c); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		orderIDs = append(orderIDs, c.OrderID())
	}

	assign := app.CreateAssignCourierCommandHandler()
	move := app.CreateMoveCouriersCommandHandler()

	for tick := 1; tick <= maxTicks; tick++ {
		err = assign.Handle(ctx, commands.NewAssignCourierCommand())
		if err != nil && !errors.Is(err, commands.ErrNoFreeCouriersFound) {
			return fmt.Errorf("tick %d: assign: %w", tick, err)
		}
		if err = move.Handle(ctx, commands.NewMoveCouriersCommand()); err != nil {
			return fmt.Errorf("tick %d: move: %w", tick, err)
		}

		done, err := report(ctx, logger, factory, tick, courierIDs, orderIDs)
		if err != nil {
			return err
		}
		if done {
			logger.Info("all orders delivered", slog.Int("ticks", tick))
			return nil
		}
	}

	return fmt.Errorf("orders still undelivered after %d ticks", maxTicks)
}

func registerCouriers(ctx context.Context, app *cmd.CompositionRoot) ([]kernel.UUID, error) {
	createCourier := app.CreateCreateCourierCommandHandler()
	addStorage := app.CreateAddCourierStorageCommandHandler()

	ids := make([]kernel.UUID, 0, len(fleet))
	for _, member := range fleet {
		location, err := app.CourierLocation()
		if err != nil {
			return nil, err
		}
		c, err := commands.NewCreateCourierCommand(member.name, member.speed, location)
		if err != nil {
			return nil, err
		}
		id, err := createCourier.Handle(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("create courier %s: %w", member.name, err)
		}
		ids = append(ids, id)
	}

	// The driver also gets a trunk, so larger orders can be carried.
	trunk, err := commands.NewAddCourierStorageCommand(ids[len(ids)-1], "Trunk", 20)
	if err != nil {
		return nil, err
	}
	if err = addStorage.Handle(ctx, trunk); err != nil {
		return nil, fmt.Errorf("add trunk: %w", err)
	}

	return ids, nil
}

func report(
	ctx context.Context,
	logger *slog.Logger,
	factory *memory.UnitOfWorkFactory,
	tick int,
	courierIDs, orderIDs []kernel.UUID,
) (bool, error) {
	uow := factory.Create()
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	for _, id := range courierIDs {
		c, err := uow.CourierRepository().Get(ctx, id)
		if err != nil {
			return false, err
		}
		logger.Info("courier",
			slog.Int("tick", tick),
			slog.String("name", c.Name()),
			slog.String("location", c.Location().String()),
			slog.Bool("free", c.IsFree()))
	}

	delivered := 0
	for _, id := range orderIDs {
		o, err := uow.OrderRepository().Get(ctx, id)
		if err != nil {
			return false, err
		}
		if o.Status() == order.Completed {
			delivered++
			continue
		}
		logger.Info("order",
			slog.Int("tick", tick),
			slog.String("id", o.ID().String()),
			slog.String("location", o.Location().String()),
			slog.String("status", o.Status().String()))
	}

	return delivered == len(orderIDs), nil
}
