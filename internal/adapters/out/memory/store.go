// Package memory keeps aggregates in process memory. It backs the simulator and
// the cycle tests, and behaves like the PostgreSQL adapter: repositories only
// track changes and Commit applies them atomically.
//
// The Store holds plain snapshots, never live aggregates, so an aggregate changed
// by a handler is invisible to other units of work until it is committed.
package memory

import (
	"sort"
	"sync"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

type storagePlaceRecord struct {
	id          kernel.UUID
	name        string
	totalVolume kernel.Volume
	orderID     *kernel.UUID
}

type courierRecord struct {
	seq      int64
	id       kernel.UUID
	name     string
	speed    kernel.Speed
	location kernel.Location
	places   []storagePlaceRecord
}

type orderRecord struct {
	seq       int64
	id        kernel.UUID
	courierID *kernel.UUID
	location  kernel.Location
	volume    kernel.Volume
	status    order.Status
}

// Store is the committed state shared by every unit of work created from the
// same factory. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	seq      int64
	couriers map[kernel.UUID]courierRecord
	orders   map[kernel.UUID]orderRecord
}

func NewStore() *Store {
	return &Store{
		couriers: make(map[kernel.UUID]courierRecord),
		orders:   make(map[kernel.UUID]orderRecord),
	}
}

func (s *Store) courier(id kernel.UUID) (courierRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.couriers[id]
	return rec, ok
}

func (s *Store) order(id kernel.UUID) (orderRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.orders[id]
	return rec, ok
}

// allCouriers returns every courier in registration order.
func (s *Store) allCouriers() []courierRecord {
	s.mu.RLock()
	records := make([]courierRecord, 0, len(s.couriers))
	for _, rec := range s.couriers {
		records = append(records, rec)
	}
	s.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool { return records[i].seq < records[j].seq })
	return records
}

// ordersInStatus returns orders in status, oldest first.
func (s *Store) ordersInStatus(status order.Status) []orderRecord {
	s.mu.RLock()
	records := make([]orderRecord, 0)
	for _, rec := range s.orders {
		if rec.status == status {
			records = append(records, rec)
		}
	}
	s.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool { return records[i].seq < records[j].seq })
	return records
}

func courierSnapshot(c *courier.Courier) courierRecord {
	places := c.StoragePlaces()
	records := make([]storagePlaceRecord, 0, len(places))
	for _, place := range places {
		records = append(records, storagePlaceRecord{
			id:          place.ID(),
			name:        place.Name(),
			totalVolume: place.TotalVolume(),
			orderID:     place.OrderID(),
		})
	}

	return courierRecord{
		id:       c.ID(),
		name:     c.Name(),
		speed:    c.Speed(),
		location: c.Location(),
		places:   records,
	}
}

func (r courierRecord) restore() (*courier.Courier, error) {
	places := make([]*courier.StoragePlace, 0, len(r.places))
	for _, rec := range r.places {
		place, err := courier.RestoreStoragePlace(rec.id, rec.name, rec.totalVolume, rec.orderID)
		if err != nil {
			return nil, err
		}
		places = append(places, place)
	}
	return courier.RestoreCourier(r.id, r.name, r.speed, r.location, places)
}

func orderSnapshot(o *order.Order) orderRecord {
	return orderRecord{
		id:        o.ID(),
		courierID: o.CourierID(),
		location:  o.Location(),
		volume:    o.Volume(),
		status:    o.Status(),
	}
}

func (r orderRecord) restore() (*order.Order, error) {
	return order.RestoreOrder(r.id, r.courierID, r.location, r.volume, r.status)
}
