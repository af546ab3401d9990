package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderRow struct {
	ID        uuid.UUID
	LocationX kernel.Coordinate
	LocationY kernel.Coordinate
	Status    int
}

type GetUncompletedOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetUncompletedOrdersQueryHandler(db *gorm.DB) GetUncompletedOrdersQueryHandler {
	return GetUncompletedOrdersQueryHandler{db: db}
}

// Handle returns Created and Assigned orders, oldest first.
func (h GetUncompletedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUncompletedOrdersQuery,
) ([]GetUncompletedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []orderRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, location_x, location_y, status
		FROM orders
		WHERE status <> ?
		ORDER BY seq
	`, int(order.Completed)).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	orders := make([]GetUncompletedOrdersQueryResponse, 0, len(rows))
	for _, row := range rows {
		id, idErr := kernel.UUIDFromBytes(row.ID[:])
		if idErr != nil {
			return nil, idErr
		}

		location, locErr := kernel.NewLocation(row.LocationX, row.LocationY)
		if locErr != nil {
			return nil, locErr
		}

		status := order.Status(row.Status)
		if statusErr := status.Validate(); statusErr != nil {
			return nil, statusErr
		}

		orders = append(orders, GetUncompletedOrdersQueryResponse{
			ID:       id,
			Location: location,
			Status:   status,
		})
	}

	return orders, nil
}
