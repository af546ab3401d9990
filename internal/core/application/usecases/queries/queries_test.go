package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueries_Validate(t *testing.T) {
	require.NoError(t, queries.NewGetAllCouriersQuery().Validate())
	require.NoError(t, queries.NewGetUncompletedOrdersQuery().Validate())

	assert.ErrorIs(t, queries.GetAllCouriersQuery{}.Validate(), queries.ErrGetAllCouriersQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetUncompletedOrdersQuery{}.Validate(), queries.ErrGetUncompletedOrdersQueryIsNotConstructed)
}

func TestHandlers_RejectNotConstructedQuery(t *testing.T) {
	_, err := queries.NewGetAllCouriersQueryHandler(nil).Handle(t.Context(), queries.GetAllCouriersQuery{})
	require.ErrorIs(t, err, queries.ErrGetAllCouriersQueryIsNotConstructed)

	_, err = queries.NewGetUncompletedOrdersQueryHandler(nil).Handle(t.Context(), queries.GetUncompletedOrdersQuery{})
	require.ErrorIs(t, err, queries.ErrGetUncompletedOrdersQueryIsNotConstructed)
}
