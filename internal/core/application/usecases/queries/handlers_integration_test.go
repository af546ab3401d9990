package queries_test

import (
	"context"
	"testing"

	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/pgtest"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
)

type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	pg *pgtest.Database
}

func TestQueryHandlersIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}

func (s *QueryHandlersIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	s.Require().NoError(err)
	s.pg = pg
}

func (s *QueryHandlersIntegrationTestSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate())
}

func (s *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	s.Require().NoError(s.pg.Terminate(context.Background()))
}

func (s *QueryHandlersIntegrationTestSuite) TestGetAllCouriers_Empty() {
	handler := queries.NewGetAllCouriersQueryHandler(s.pg.DB)

	result, err := handler.Handle(s.T().Context(), queries.NewGetAllCouriersQuery())

	s.Require().NoError(err)
	s.NotNil(result)
	s.Empty(result)
}

func (s *QueryHandlersIntegrationTestSuite) TestGetAllCouriers_SortedByName() {
	ctx := s.T().Context()
	zed := s.newCourier("Zed", 2, 7)
	amy := s.newCourier("Amy", 4, 4)
	for _, c := range []*courier.Courier{zed, amy} {
		s.Require().NoError(courierrepo.Persist(ctx, s.pg.DB, c, true))
	}
	handler := queries.NewGetAllCouriersQueryHandler(s.pg.DB)

	result, err := handler.Handle(ctx, queries.NewGetAllCouriersQuery())

	s.Require().NoError(err)
	s.Require().Len(result, 2)
	s.Equal(amy.ID(), result[0].ID)
	s.Equal("Amy", result[0].Name)
	s.Equal(amy.Location(), result[0].Location)
	s.Equal(zed.ID(), result[1].ID)
	s.Equal(zed.Location(), result[1].Location)
}

func (s *QueryHandlersIntegrationTestSuite) TestGetUncompletedOrders_ExcludesCompleted() {
	ctx := s.T().Context()
	created := s.newOrder(1, 2)
	assigned := s.newOrder(3, 4)
	completed := s.newOrder(5, 6)
	for _, o := range []*order.Order{created, assigned, completed} {
		s.Require().NoError(orderrepo.Persist(ctx, s.pg.DB, o, true))
	}
	s.Require().NoError(assigned.Assign(kernel.NewUUID()))
	s.Require().NoError(completed.Assign(kernel.NewUUID()))
	s.Require().NoError(completed.Complete())
	for _, o := range []*order.Order{assigned, completed} {
		s.Require().NoError(orderrepo.Persist(ctx, s.pg.DB, o, false))
	}
	handler := queries.NewGetUncompletedOrdersQueryHandler(s.pg.DB)

	result, err := handler.Handle(ctx, queries.NewGetUncompletedOrdersQuery())

	s.Require().NoError(err)
	s.Require().Len(result, 2)
	s.Equal(created.ID(), result[0].ID)
	s.Equal(created.Location(), result[0].Location)
	s.Equal(order.Created, result[0].Status)
	s.Equal(assigned.ID(), result[1].ID)
	s.Equal(order.Assigned, result[1].Status)
}

func (s *QueryHandlersIntegrationTestSuite) newCourier(name string, x, y kernel.Coordinate) *courier.Courier {
	loc, err := kernel.NewLocation(x, y)
	s.Require().NoError(err)
	spd, err := kernel.NewSpeed(1)
	s.Require().NoError(err)
	c, err := courier.NewCourier(name, spd, loc)
	s.Require().NoError(err)
	return c
}

func (s *QueryHandlersIntegrationTestSuite) newOrder(x, y kernel.Coordinate) *order.Order {
	loc, err := kernel.NewLocation(x, y)
	s.Require().NoError(err)
	vol, err := kernel.NewVolume(1)
	s.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), loc, vol)
	s.Require().NoError(err)
	return o
}
