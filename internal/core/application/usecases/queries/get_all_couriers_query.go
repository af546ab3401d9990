// Package queries contains read-only views of the dispatch state. Handlers read
// the database directly and never go through aggregates or a unit of work.
package queries

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetAllCouriersQueryIsNotConstructed = errs.NewValueIsRequiredError("GetAllCouriersQuery")

// GetAllCouriersQuery lists every registered courier.
type GetAllCouriersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetAllCouriersQuery() GetAllCouriersQuery {
	return GetAllCouriersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetAllCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllCouriersQueryIsNotConstructed)
}

type GetAllCouriersQueryResponse struct {
	ID       kernel.UUID
	Name     string
	Location kernel.Location
}
