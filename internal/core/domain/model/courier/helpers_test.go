package courier_test

import (
	"testing"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func location(t *testing.T, x, y kernel.Coordinate) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(x, y)
	require.NoError(t, err)
	return loc
}

func volume(t *testing.T, v int) kernel.Volume {
	t.Helper()
	vol, err := kernel.NewVolume(v)
	require.NoError(t, err)
	return vol
}

func speed(t *testing.T, v int) kernel.Speed {
	t.Helper()
	s, err := kernel.NewSpeed(v)
	require.NoError(t, err)
	return s
}

func newOrder(t *testing.T, vol int) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), location(t, 5, 5), volume(t, vol))
	require.NoError(t, err)
	return o
}

func newCourier(t *testing.T, spd int, at kernel.Location) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier("Test Courier", speed(t, spd), at)
	require.NoError(t, err)
	return c
}
