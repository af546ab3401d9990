// Package orderrepo maps the order aggregate onto the orders table.
package orderrepo

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is a row of the orders table. Seq is assigned by the database and
// defines "oldest" for the assignment cycle.
type OrderDTO struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Seq       int64       `gorm:"->"`
	CourierID *uuid.UUID  `gorm:"type:uuid;index"`
	Location  LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	Volume    int         `gorm:"type:int;not null"`
	Status    int         `gorm:"type:smallint;not null;index"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type LocationDTO struct {
	X kernel.Coordinate `gorm:"type:smallint;not null"`
	Y kernel.Coordinate `gorm:"type:smallint;not null"`
}

func fromDomain(o *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := o.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return OrderDTO{
		ID:        o.ID().Bytes(),
		CourierID: courierID,
		Location: LocationDTO{
			X: o.Location().X(),
			Y: o.Location().Y(),
		},
		Volume: o.Volume().Int(),
		Status: int(o.Status()),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		parsed, courierErr := kernel.UUIDFromBytes(dto.CourierID[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &parsed
	}

	loc, err := kernel.NewLocation(dto.Location.X, dto.Location.Y)
	if err != nil {
		return nil, err
	}

	volume, err := kernel.NewVolume(dto.Volume)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, courierID, loc, volume, order.Status(dto.Status))
}
