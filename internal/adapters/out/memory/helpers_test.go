package memory_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []order.StatusChanged
	err    error
}

func (p *recordingPublisher) PublishOrderStatusChanged(_ context.Context, events ...order.StatusChanged) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return p.err
}

func (p *recordingPublisher) transitions() [][2]order.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	result := make([][2]order.Status, 0, len(p.events))
	for _, e := range p.events {
		result = append(result, [2]order.Status{e.From, e.To})
	}
	return result
}

func newFactory(publisher *recordingPublisher) *memory.UnitOfWorkFactory {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return memory.NewUnitOfWorkFactory(memory.NewStore(), publisher, logger)
}

func location(t *testing.T, x, y kernel.Coordinate) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(x, y)
	require.NoError(t, err)
	return loc
}

func newOrder(t *testing.T, at kernel.Location, vol int) *order.Order {
	t.Helper()
	v, err := kernel.NewVolume(vol)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), at, v)
	require.NoError(t, err)
	return o
}

func newCourier(t *testing.T, name string, spd int, at kernel.Location) *courier.Courier {
	t.Helper()
	s, err := kernel.NewSpeed(spd)
	require.NoError(t, err)
	c, err := courier.NewCourier(name, s, at)
	require.NoError(t, err)
	return c
}
