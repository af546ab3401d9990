package services

import (
	"math"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ErrCouriersAreRequired is returned when Dispatch gets a nil courier list.
// An empty, non-nil list is a normal "nobody available" situation.
var ErrCouriersAreRequired = errs.NewValueIsRequiredError("couriers")

// OrderDispatcher picks the courier for an order.
//
// Selection rules:
//   - only couriers with a storage place that fits the order are considered
//   - the smallest CalculateTimeToLocation wins
//   - ties go to the courier that comes first in the input list
//
// On success both sides are updated: the courier stores the order and the order
// is assigned to the courier.
//
// Example usage:
//
//	dispatcher := services.NewOrderDispatcher()
//	chosen, err := dispatcher.Dispatch(o, couriers)
//	if err != nil {
//	    return err
//	}
//	if chosen == nil {
//	    // no courier can carry it right now, o is still Created
//	}
type OrderDispatcher struct{}

func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Dispatch selects a courier for o and performs the assignment.
//
// Parameters:
//   - o: a Created order
//   - couriers: candidates in priority order for tie-breaking
//
// Returns:
//   - *courier.Courier: the chosen courier, or nil when no candidate can carry the order
//   - error: validation errors, or an order/courier contract violation; nothing is mutated
//     when an error is returned before the assignment step
func (d OrderDispatcher) Dispatch(o *order.Order, couriers []*courier.Courier) (*courier.Courier, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if couriers == nil {
		return nil, ErrCouriersAreRequired
	}
	if _, err := o.Status().Assign(); err != nil {
		return nil, err
	}

	best, err := d.findBestCourier(o, couriers)
	if err != nil {
		return nil, err
	}
	if best == nil {
		return nil, nil //nolint:nilnil // no suitable courier is not an error
	}

	if err = best.TakeOrder(o); err != nil {
		return nil, err
	}
	if err = o.Assign(best.ID()); err != nil {
		return nil, err
	}

	return best, nil
}

func (d OrderDispatcher) findBestCourier(o *order.Order, couriers []*courier.Courier) (*courier.Courier, error) {
	var (
		best     *courier.Courier
		bestTime = math.MaxInt
	)

	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		fits, err := c.CanTakeOrder(o)
		if err != nil {
			return nil, err
		}
		if !fits {
			continue
		}

		ticks, err := c.CalculateTimeToLocation(o.Location())
		if err != nil {
			return nil, err
		}

		// strict comparison keeps the earliest courier on ties
		if ticks < bestTime {
			bestTime = ticks
			best = c
		}
	}

	return best, nil
}
