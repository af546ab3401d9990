package orderrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

type changeTracker interface {
	Track(id kernel.UUID, aggregate any, isNew bool)
	Tracked(id kernel.UUID) (any, bool)
}

// GormOrderRepository reads committed orders through GORM and records writes with
// its unit of work. Orders the unit already tracks are returned as tracked.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker changeTracker
}

func NewGormOrderRepository(db *gorm.DB, tracker changeTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.tracker.Track(aggregate.ID(), aggregate, true)
	return nil
}

func (r *GormOrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.tracker.Track(aggregate.ID(), aggregate, false)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if o, ok := r.tracked(id); ok {
		return o, nil
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil //nolint:nilnil // absence is not an error
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) GetOldestInCreatedStatus(ctx context.Context) (*order.Order, error) {
	orders, err := r.findByStatus(ctx, order.Created)
	if err != nil || len(orders) == 0 {
		return nil, err
	}
	return orders[0], nil
}

func (r *GormOrderRepository) GetAllInAssignedStatus(ctx context.Context) ([]*order.Order, error) {
	return r.findByStatus(ctx, order.Assigned)
}

// findByStatus returns orders in status, oldest first, with tracked instances
// substituted and re-checked against status.
func (r *GormOrderRepository) findByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Where("status = ?", int(status)).Order("seq").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := r.resolve(dto)
		if err != nil {
			return nil, err
		}
		if o.Status() == status {
			orders = append(orders, o)
		}
	}

	return orders, nil
}

func (r *GormOrderRepository) resolve(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	if o, ok := r.tracked(id); ok {
		return o, nil
	}
	return toDomain(dto)
}

func (r *GormOrderRepository) tracked(id kernel.UUID) (*order.Order, bool) {
	aggregate, ok := r.tracker.Tracked(id)
	if !ok {
		return nil, false
	}
	o, ok := aggregate.(*order.Order)
	return o, ok
}

// Persist writes one order inside tx.
func Persist(ctx context.Context, tx *gorm.DB, aggregate *order.Order, isNew bool) error {
	dto := fromDomain(aggregate)
	db := tx.WithContext(ctx)

	if isNew {
		return db.Create(&dto).Error
	}

	result := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"courier_id": dto.CourierID,
		"location_x": dto.Location.X,
		"location_y": dto.Location.Y,
		"volume":     dto.Volume,
		"status":     dto.Status,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}

	return nil
}
