package memory_test

import (
	"math/rand/v2"
	"testing"

	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uowFactory struct{ f *memory.UnitOfWorkFactory }

func (u uowFactory) Create() commands.UoW { return u.f.Create() }

type courierUoWFactory struct{ f *memory.UnitOfWorkFactory }

func (u courierUoWFactory) Create() commands.CourierUoW { return u.f.Create() }

type orderUoWFactory struct{ f *memory.UnitOfWorkFactory }

func (u orderUoWFactory) Create() commands.OrderUoW { return u.f.Create() }

type cycleHarness struct {
	t         *testing.T
	factory   *memory.UnitOfWorkFactory
	publisher *recordingPublisher
	assign    commands.AssignCourierCommandHandler
	move      commands.MoveCouriersCommandHandler
}

func newCycleHarness(t *testing.T) *cycleHarness {
	publisher := &recordingPublisher{}
	factory := newFactory(publisher)
	return &cycleHarness{
		t:         t,
		factory:   factory,
		publisher: publisher,
		assign:    commands.NewAssignCourierCommandHandler(uowFactory{factory}, services.NewOrderDispatcher()),
		move:      commands.NewMoveCouriersCommandHandler(uowFactory{factory}),
	}
}

func (h *cycleHarness) seed(couriers []*courier.Courier, orders []*order.Order) {
	uow := h.factory.Create()
	for _, c := range couriers {
		require.NoError(h.t, uow.CourierRepository().Add(h.t.Context(), c))
	}
	for _, o := range orders {
		require.NoError(h.t, uow.OrderRepository().Add(h.t.Context(), o))
	}
	require.NoError(h.t, uow.Commit(h.t.Context()))
}

func (h *cycleHarness) runAssign() error {
	return h.assign.Handle(h.t.Context(), commands.NewAssignCourierCommand())
}

func (h *cycleHarness) runMove() error {
	return h.move.Handle(h.t.Context(), commands.NewMoveCouriersCommand())
}

func (h *cycleHarness) order(id kernel.UUID) *order.Order {
	o, err := h.factory.Create().OrderRepository().Get(h.t.Context(), id)
	require.NoError(h.t, err)
	require.NotNil(h.t, o)
	return o
}

func (h *cycleHarness) courier(id kernel.UUID) *courier.Courier {
	c, err := h.factory.Create().CourierRepository().Get(h.t.Context(), id)
	require.NoError(h.t, err)
	require.NotNil(h.t, c)
	return c
}

func TestCycles_AssignMoveAndComplete(t *testing.T) {
	h := newCycleHarness(t)
	fast := newCourier(t, "Fast", 3, location(t, 1, 1))
	slow := newCourier(t, "Slow", 1, location(t, 1, 1))
	o := newOrder(t, location(t, 4, 2), 5)
	h.seed([]*courier.Courier{slow, fast}, []*order.Order{o})

	require.NoError(t, h.runAssign())

	assigned := h.order(o.ID())
	assert.Equal(t, order.Assigned, assigned.Status())
	require.NotNil(t, assigned.CourierID())
	assert.Equal(t, fast.ID(), *assigned.CourierID())
	assert.False(t, h.courier(fast.ID()).IsFree())
	assert.True(t, h.courier(slow.ID()).IsFree())

	require.NoError(t, h.runAssign(), "no Created order left is a no-op")

	require.NoError(t, h.runMove())
	assert.Equal(t, location(t, 4, 1), h.courier(fast.ID()).Location())
	assert.Equal(t, order.Assigned, h.order(o.ID()).Status())

	require.NoError(t, h.runMove())
	assert.Equal(t, location(t, 4, 2), h.courier(fast.ID()).Location())
	assert.Equal(t, order.Completed, h.order(o.ID()).Status())
	assert.True(t, h.courier(fast.ID()).IsFree())

	require.NoError(t, h.runMove(), "no Assigned order left is a no-op")

	assert.Equal(t, [][2]order.Status{
		{order.Created, order.Assigned},
		{order.Assigned, order.Completed},
	}, h.publisher.transitions())
}

func TestCycles_MovementTakesCeilOfDistanceOverSpeed(t *testing.T) {
	h := newCycleHarness(t)
	c := newCourier(t, "Walker", 2, location(t, 1, 1))
	o := newOrder(t, location(t, 6, 3), 1)
	h.seed([]*courier.Courier{c}, []*order.Order{o})
	require.NoError(t, h.runAssign())

	ticks, err := c.CalculateTimeToLocation(o.Location())
	require.NoError(t, err)
	require.Equal(t, 4, ticks)

	for range ticks - 1 {
		require.NoError(t, h.runMove())
		assert.Equal(t, order.Assigned, h.order(o.ID()).Status())
	}
	require.NoError(t, h.runMove())

	assert.Equal(t, order.Completed, h.order(o.ID()).Status())
	assert.Equal(t, o.Location(), h.courier(c.ID()).Location())
}

func TestCycles_NoFreeCourier(t *testing.T) {
	h := newCycleHarness(t)
	c := newCourier(t, "Busy", 1, location(t, 1, 1))
	first := newOrder(t, location(t, 10, 10), 1)
	second := newOrder(t, location(t, 2, 2), 1)
	h.seed([]*courier.Courier{c}, []*order.Order{first, second})
	require.NoError(t, h.runAssign())

	err := h.runAssign()

	require.ErrorIs(t, err, commands.ErrNoFreeCouriersFound)
	assert.Equal(t, order.Created, h.order(second.ID()).Status())
}

func TestCycles_OversizedOrderWaitsForCapacity(t *testing.T) {
	h := newCycleHarness(t)
	c := newCourier(t, "Ann", 1, location(t, 1, 1))
	big := newOrder(t, location(t, 2, 1), 25)
	h.seed([]*courier.Courier{c}, []*order.Order{big})

	require.NoError(t, h.runAssign())
	assert.Equal(t, order.Created, h.order(big.ID()).Status())
	assert.True(t, h.courier(c.ID()).IsFree())

	addStorage := commands.NewAddCourierStorageCommandHandler(courierUoWFactory{h.factory})
	cmd, err := commands.NewAddCourierStorageCommand(c.ID(), "Trailer", 30)
	require.NoError(t, err)
	require.NoError(t, addStorage.Handle(t.Context(), cmd))

	require.NoError(t, h.runAssign())

	stored := h.courier(c.ID())
	require.Len(t, stored.StoragePlaces(), 2)
	assert.False(t, stored.StoragePlaces()[0].IsOccupied())
	assert.True(t, stored.StoragePlaces()[1].Holds(big.ID()))
	assert.Equal(t, order.Assigned, h.order(big.ID()).Status())
}

func TestCycles_RegistrationThroughCommands(t *testing.T) {
	h := newCycleHarness(t)
	createCourier := commands.NewCreateCourierCommandHandler(courierUoWFactory{h.factory})
	createOrder := commands.NewCreateOrderCommandHandler(orderUoWFactory{h.factory}, rand.New(rand.NewPCG(1, 2)))

	courierCmd, err := commands.NewCreateCourierCommand("Ann", 10, location(t, 5, 5))
	require.NoError(t, err)
	courierID, err := createCourier.Handle(t.Context(), courierCmd)
	require.NoError(t, err)

	orderID := kernel.NewUUID()
	orderCmd, err := commands.NewCreateOrderCommand(orderID, "Unknown", 5)
	require.NoError(t, err)
	require.NoError(t, createOrder.Handle(t.Context(), orderCmd))

	require.NoError(t, h.runAssign())
	require.NoError(t, h.runMove())

	assert.Equal(t, order.Completed, h.order(orderID).Status())
	assert.Equal(t, h.order(orderID).Location(), h.courier(courierID).Location())
}
