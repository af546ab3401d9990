package queries

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetUncompletedOrdersQueryIsNotConstructed = errs.NewValueIsRequiredError("GetUncompletedOrdersQuery")

// GetUncompletedOrdersQuery lists orders that are Created or Assigned.
type GetUncompletedOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetUncompletedOrdersQuery() GetUncompletedOrdersQuery {
	return GetUncompletedOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetUncompletedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUncompletedOrdersQueryIsNotConstructed)
}

type GetUncompletedOrdersQueryResponse struct {
	ID       kernel.UUID
	Location kernel.Location
	Status   order.Status
}
