package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type courierRow struct {
	ID        uuid.UUID
	Name      string
	LocationX kernel.Coordinate
	LocationY kernel.Coordinate
}

type GetAllCouriersQueryHandler struct {
	db *gorm.DB
}

func NewGetAllCouriersQueryHandler(db *gorm.DB) GetAllCouriersQueryHandler {
	return GetAllCouriersQueryHandler{db: db}
}

// Handle returns all couriers sorted by name, then by registration order.
func (h GetAllCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAllCouriersQuery,
) ([]GetAllCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []courierRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, location_x, location_y
		FROM couriers
		ORDER BY name, seq
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	couriers := make([]GetAllCouriersQueryResponse, 0, len(rows))
	for _, row := range rows {
		id, idErr := kernel.UUIDFromBytes(row.ID[:])
		if idErr != nil {
			return nil, idErr
		}

		location, locErr := kernel.NewLocation(row.LocationX, row.LocationY)
		if locErr != nil {
			return nil, locErr
		}

		couriers = append(couriers, GetAllCouriersQueryResponse{
			ID:       id,
			Name:     row.Name,
			Location: location,
		})
	}

	return couriers, nil
}
