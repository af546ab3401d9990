// Package courierrepo maps the courier aggregate onto the couriers and
// storage_places tables.
package courierrepo

import (
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO is a row of the couriers table. Seq is assigned by the database and
// gives couriers a stable registration order.
type CourierDTO struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Seq           int64             `gorm:"->"`
	Name          string            `gorm:"type:varchar(255);not null"`
	Speed         int               `gorm:"type:int;not null"`
	Location      LocationDTO       `gorm:"embedded;embeddedPrefix:location_"`
	StoragePlaces []StoragePlaceDTO `gorm:"foreignKey:CourierID;constraint:OnDelete:CASCADE"`
}

func (CourierDTO) TableName() string {
	return "couriers"
}

type LocationDTO struct {
	X kernel.Coordinate `gorm:"type:smallint;not null"`
	Y kernel.Coordinate `gorm:"type:smallint;not null"`
}

// StoragePlaceDTO is a row of storage_places. Position keeps the courier's scan order.
type StoragePlaceDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CourierID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Position    int        `gorm:"type:int;not null"`
	Name        string     `gorm:"type:varchar(255);not null"`
	TotalVolume int        `gorm:"type:int;not null"`
	OrderID     *uuid.UUID `gorm:"type:uuid;index"`
}

func (StoragePlaceDTO) TableName() string {
	return "storage_places"
}

func fromDomain(c *courier.Courier) CourierDTO {
	courierID := c.ID().Bytes()
	places := c.StoragePlaces()
	dtos := make([]StoragePlaceDTO, 0, len(places))

	for i, place := range places {
		var orderID *uuid.UUID
		if id := place.OrderID(); id != nil {
			raw := id.Bytes()
			orderID = &raw
		}

		dtos = append(dtos, StoragePlaceDTO{
			ID:          place.ID().Bytes(),
			CourierID:   courierID,
			Position:    i,
			Name:        place.Name(),
			TotalVolume: place.TotalVolume().Int(),
			OrderID:     orderID,
		})
	}

	return CourierDTO{
		ID:    courierID,
		Name:  c.Name(),
		Speed: c.Speed().Int(),
		Location: LocationDTO{
			X: c.Location().X(),
			Y: c.Location().Y(),
		},
		StoragePlaces: dtos,
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	speed, err := kernel.NewSpeed(dto.Speed)
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewLocation(dto.Location.X, dto.Location.Y)
	if err != nil {
		return nil, err
	}

	places := make([]*courier.StoragePlace, 0, len(dto.StoragePlaces))
	for _, placeDTO := range dto.StoragePlaces {
		place, placeErr := storagePlaceToDomain(placeDTO)
		if placeErr != nil {
			return nil, placeErr
		}
		places = append(places, place)
	}

	return courier.RestoreCourier(id, dto.Name, speed, loc, places)
}

func storagePlaceToDomain(dto StoragePlaceDTO) (*courier.StoragePlace, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	volume, err := kernel.NewVolume(dto.TotalVolume)
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		parsed, orderErr := kernel.UUIDFromBytes(dto.OrderID[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &parsed
	}

	return courier.RestoreStoragePlace(id, dto.Name, volume, orderID)
}
