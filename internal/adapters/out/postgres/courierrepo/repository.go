package courierrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// changeTracker is implemented by the unit of work that owns the repository.
type changeTracker interface {
	Track(id kernel.UUID, aggregate any, isNew bool)
	Tracked(id kernel.UUID) (any, bool)
}

// GormCourierRepository reads committed couriers through GORM and records writes
// with its unit of work. Reads return the unit's own instance for any courier it
// already tracks, so a handler always sees its pending changes.
type GormCourierRepository struct {
	db      *gorm.DB
	tracker changeTracker
}

func NewGormCourierRepository(db *gorm.DB, tracker changeTracker) *GormCourierRepository {
	return &GormCourierRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormCourierRepository) Add(_ context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.tracker.Track(aggregate.ID(), aggregate, true)
	return nil
}

func (r *GormCourierRepository) Update(_ context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.tracker.Track(aggregate.ID(), aggregate, false)
	return nil
}

func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if c, ok := r.tracked(id); ok {
		return c, nil
	}

	var dto CourierDTO
	err := r.withPlaces(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil //nolint:nilnil // absence is not an error
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// FindAllFree returns couriers without any occupied storage place, in registration order.
func (r *GormCourierRepository) FindAllFree(ctx context.Context) ([]*courier.Courier, error) {
	var dtos []CourierDTO
	err := r.withPlaces(ctx).
		Where("NOT EXISTS (SELECT 1 FROM storage_places sp WHERE sp.courier_id = couriers.id AND sp.order_id IS NOT NULL)").
		Order("seq").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	free := make([]*courier.Courier, 0, len(dtos))
	for _, dto := range dtos {
		c, mapErr := r.resolve(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		if c.IsFree() {
			free = append(free, c)
		}
	}

	return free, nil
}

func (r *GormCourierRepository) withPlaces(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("StoragePlaces", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

func (r *GormCourierRepository) resolve(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	if c, ok := r.tracked(id); ok {
		return c, nil
	}
	return toDomain(dto)
}

func (r *GormCourierRepository) tracked(id kernel.UUID) (*courier.Courier, bool) {
	aggregate, ok := r.tracker.Tracked(id)
	if !ok {
		return nil, false
	}
	c, ok := aggregate.(*courier.Courier)
	return c, ok
}

// Persist writes one courier inside tx. New couriers are inserted; existing ones are
// updated and their storage places upserted.
func Persist(ctx context.Context, tx *gorm.DB, aggregate *courier.Courier, isNew bool) error {
	dto := fromDomain(aggregate)
	db := tx.WithContext(ctx)

	if isNew {
		return db.Create(&dto).Error
	}

	result := db.Model(&CourierDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"name":       dto.Name,
		"speed":      dto.Speed,
		"location_x": dto.Location.X,
		"location_y": dto.Location.Y,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("courier", aggregate.ID())
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"position", "name", "total_volume", "order_id"}),
	}).Create(&dto.StoragePlaces).Error
}
