package order_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocation(t *testing.T, x, y kernel.Coordinate) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(x, y)
	require.NoError(t, err)
	return loc
}

func newVolume(t *testing.T, v int) kernel.Volume {
	t.Helper()
	vol, err := kernel.NewVolume(v)
	require.NoError(t, err)
	return vol
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), newLocation(t, 5, 5), newVolume(t, 5))
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create a Created order without courier", func(t *testing.T) {
		id := kernel.NewUUID()
		loc := newLocation(t, 2, 8)

		o, err := order.NewOrder(id, loc, newVolume(t, 3))

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, loc, o.Location())
		assert.Equal(t, 3, o.Volume().Int())
		assert.Equal(t, order.Created, o.Status())
		assert.Nil(t, o.CourierID())
		assert.Empty(t, o.Events())
	})

	t.Run("should reject every absent argument", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, kernel.Location{}, kernel.Volume{})

		require.Nil(t, o)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
		require.ErrorIs(t, err, kernel.ErrVolumeIsNotConstructed)
	})
}

func TestOrder_Validate(t *testing.T) {
	var nilOrder *order.Order
	require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)

	zero := &order.Order{}
	require.ErrorIs(t, zero.Validate(), errs.ErrValueIsRequired)
}

func TestOrder_Assign(t *testing.T) {
	t.Run("should assign a Created order", func(t *testing.T) {
		o := newOrder(t)
		courierID := kernel.NewUUID()

		require.NoError(t, o.Assign(courierID))

		assert.Equal(t, order.Assigned, o.Status())
		require.NotNil(t, o.CourierID())
		assert.True(t, o.CourierID().IsEqual(courierID))
	})

	t.Run("should not reassign", func(t *testing.T) {
		o := newOrder(t)
		first := kernel.NewUUID()
		require.NoError(t, o.Assign(first))

		err := o.Assign(kernel.NewUUID())

		require.ErrorIs(t, err, order.ErrInvalidStatusTransition)
		assert.True(t, o.CourierID().IsEqual(first))
		assert.Equal(t, order.Assigned, o.Status())
	})

	t.Run("should not assign a completed order", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID()))
		require.NoError(t, o.Complete())

		require.ErrorIs(t, o.Assign(kernel.NewUUID()), order.ErrInvalidStatusTransition)
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("should reject an absent courier id", func(t *testing.T) {
		o := newOrder(t)

		require.ErrorIs(t, o.Assign(kernel.UUID{}), errs.ErrValueIsRequired)
		assert.Equal(t, order.Created, o.Status())
		assert.Nil(t, o.CourierID())
	})

	t.Run("returned courier id is a copy", func(t *testing.T) {
		o := newOrder(t)
		courierID := kernel.NewUUID()
		require.NoError(t, o.Assign(courierID))

		got := o.CourierID()
		*got = kernel.NewUUID()

		assert.True(t, o.CourierID().IsEqual(courierID))
	})
}

func TestOrder_Complete(t *testing.T) {
	t.Run("should complete an Assigned order and keep the courier", func(t *testing.T) {
		o := newOrder(t)
		courierID := kernel.NewUUID()
		require.NoError(t, o.Assign(courierID))

		require.NoError(t, o.Complete())

		assert.Equal(t, order.Completed, o.Status())
		assert.True(t, o.CourierID().IsEqual(courierID))
	})

	t.Run("should not complete a Created order", func(t *testing.T) {
		o := newOrder(t)

		require.ErrorIs(t, o.Complete(), order.ErrInvalidStatusTransition)
		assert.Equal(t, order.Created, o.Status())
	})

	t.Run("should not complete twice", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID()))
		require.NoError(t, o.Complete())

		require.ErrorIs(t, o.Complete(), order.ErrInvalidStatusTransition)
	})
}

func TestOrder_Events(t *testing.T) {
	o := newOrder(t)
	courierID := kernel.NewUUID()

	require.NoError(t, o.Assign(courierID))
	require.NoError(t, o.Complete())

	events := o.Events()
	require.Len(t, events, 2)

	assert.Equal(t, order.Created, events[0].From)
	assert.Equal(t, order.Assigned, events[0].To)
	assert.True(t, events[0].OrderID.IsEqual(o.ID()))
	require.NotNil(t, events[0].CourierID)
	assert.True(t, events[0].CourierID.IsEqual(courierID))

	assert.Equal(t, order.Assigned, events[1].From)
	assert.Equal(t, order.Completed, events[1].To)
	assert.False(t, events[0].EventID.IsEqual(events[1].EventID))
	assert.Equal(t, "order.status_changed", events[1].EventName())

	o.ClearEvents()
	assert.Empty(t, o.Events())
}

func TestOrder_FailedTransitionRecordsNoEvent(t *testing.T) {
	o := newOrder(t)

	require.Error(t, o.Complete())

	assert.Empty(t, o.Events())
}

func TestRestoreOrder(t *testing.T) {
	id := kernel.NewUUID()
	courierID := kernel.NewUUID()
	loc := newLocation(t, 3, 3)
	vol := newVolume(t, 4)

	t.Run("should restore each valid pairing", func(t *testing.T) {
		created, err := order.RestoreOrder(id, nil, loc, vol, order.Created)
		require.NoError(t, err)
		assert.Nil(t, created.CourierID())

		assigned, err := order.RestoreOrder(id, &courierID, loc, vol, order.Assigned)
		require.NoError(t, err)
		assert.True(t, assigned.CourierID().IsEqual(courierID))

		completed, err := order.RestoreOrder(id, &courierID, loc, vol, order.Completed)
		require.NoError(t, err)
		assert.Equal(t, order.Completed, completed.Status())
		assert.Empty(t, completed.Events())
	})

	t.Run("should reject a courier on a Created order", func(t *testing.T) {
		_, err := order.RestoreOrder(id, &courierID, loc, vol, order.Created)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject an Assigned order without courier", func(t *testing.T) {
		_, err := order.RestoreOrder(id, nil, loc, vol, order.Assigned)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(id, nil, loc, vol, order.Unknown)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_IsEqual(t *testing.T) {
	id := kernel.NewUUID()
	a, err := order.NewOrder(id, newLocation(t, 1, 1), newVolume(t, 1))
	require.NoError(t, err)
	b, err := order.NewOrder(id, newLocation(t, 9, 9), newVolume(t, 9))
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(newOrder(t)))
	assert.False(t, a.IsEqual(nil))
}
