package order

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// StatusChanged is recorded whenever an order moves to a new status.
type StatusChanged struct {
	EventID    kernel.UUID
	OrderID    kernel.UUID
	CourierID  *kernel.UUID
	From       Status
	To         Status
	OccurredAt time.Time
}

// EventName identifies the event type on the wire.
func (StatusChanged) EventName() string {
	return "order.status_changed"
}

func newStatusChanged(o *Order, from Status) StatusChanged {
	var courierID *kernel.UUID
	if o.courierID != nil {
		id := *o.courierID
		courierID = &id
	}

	return StatusChanged{
		EventID:    kernel.NewUUID(),
		OrderID:    o.ID(),
		CourierID:  courierID,
		From:       from,
		To:         o.status,
		OccurredAt: time.Now().UTC(),
	}
}
