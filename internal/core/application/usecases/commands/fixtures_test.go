package commands_test

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
