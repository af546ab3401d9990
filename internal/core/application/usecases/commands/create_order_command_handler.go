package commands

import (
	"context"
	"math/rand/v2"
	"sync"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// CreateOrderCommandHandler creates orders at a random grid location.
//
// The random source is injected so tests and the simulator are reproducible.
// *rand.Rand is not safe for concurrent use, so draws are serialized.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory

	mu  *sync.Mutex
	rng *rand.Rand
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, rng *rand.Rand) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		mu:         &sync.Mutex{},
		rng:        rng,
	}
}

// Handle fails with *errs.AlreadyExistsError when an order with the same id exists.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	location, err := h.randomLocation()
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	existing, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if existing != nil {
		return errs.NewAlreadyExistsError("order", cmd.OrderID())
	}

	o, err := order.NewOrder(cmd.OrderID(), location, cmd.Volume())
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h CreateOrderCommandHandler) randomLocation() (kernel.Location, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return kernel.NewRandomLocation(h.rng)
}
