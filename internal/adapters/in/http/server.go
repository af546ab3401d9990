// Package http exposes the command and query handlers over the REST API described
// in internal/generated/servers.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Orders created through the API carry no address or size yet.
const (
	defaultOrderStreet = "Unknown"
	defaultOrderVolume = 5
)

type (
	CreateCourierHandler interface {
		Handle(ctx context.Context, cmd commands.CreateCourierCommand) (kernel.UUID, error)
	}

	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}

	AddCourierStorageHandler interface {
		Handle(ctx context.Context, cmd commands.AddCourierStorageCommand) error
	}

	GetAllCouriersHandler interface {
		Handle(ctx context.Context, query queries.GetAllCouriersQuery) ([]queries.GetAllCouriersQueryResponse, error)
	}

	GetUncompletedOrdersHandler interface {
		Handle(
			ctx context.Context,
			query queries.GetUncompletedOrdersQuery,
		) ([]queries.GetUncompletedOrdersQueryResponse, error)
	}

	// LocationSource picks the starting location of a new courier.
	LocationSource func() (kernel.Location, error)
)

// Server implements servers.ServerInterface.
type Server struct {
	createCourierHandler     CreateCourierHandler
	createOrderHandler       CreateOrderHandler
	addCourierStorageHandler AddCourierStorageHandler

	getAllCouriersHandler       GetAllCouriersHandler
	getUncompletedOrdersHandler GetUncompletedOrdersHandler

	courierLocation LocationSource
	metrics         *metrics.Metrics
	logger          *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(
	createCourierHandler CreateCourierHandler,
	createOrderHandler CreateOrderHandler,
	addCourierStorageHandler AddCourierStorageHandler,
	getAllCouriersHandler GetAllCouriersHandler,
	getUncompletedOrdersHandler GetUncompletedOrdersHandler,
	courierLocation LocationSource,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Server {
	return &Server{
		createCourierHandler:        createCourierHandler,
		createOrderHandler:          createOrderHandler,
		addCourierStorageHandler:    addCourierStorageHandler,
		getAllCouriersHandler:       getAllCouriersHandler,
		getUncompletedOrdersHandler: getUncompletedOrdersHandler,
		courierLocation:             courierLocation,
		metrics:                     m,
		logger:                      logger.With(slog.String("component", "http")),
	}
}

// GetCouriers handles GET /api/v1/couriers.
func (s *Server) GetCouriers(ctx echo.Context) error {
	couriers, err := s.getAllCouriersHandler.Handle(ctx.Request().Context(), queries.NewGetAllCouriersQuery())
	if err != nil {
		return s.fail(ctx, "failed to retrieve couriers", err)
	}

	response := make([]servers.Courier, 0, len(couriers))
	for _, c := range couriers {
		response = append(response, servers.Courier{
			Id:       c.ID.Bytes(),
			Name:     c.Name,
			Location: toLocation(c.Location),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var body servers.CreateCourierJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return respond(ctx, http.StatusBadRequest, "Invalid request body")
	}

	location, err := s.courierLocation()
	if err != nil {
		return s.fail(ctx, "failed to pick courier location", err)
	}

	cmd, err := commands.NewCreateCourierCommand(body.Name, body.Speed, location)
	if err != nil {
		return s.fail(ctx, "invalid courier", err)
	}

	id, err := s.createCourierHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "failed to create courier", err)
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: id.Bytes()})
}

// AddStoragePlace handles POST /api/v1/couriers/{courierId}/storage-places.
func (s *Server) AddStoragePlace(ctx echo.Context, courierID openapi_types.UUID) error {
	var body servers.AddStoragePlaceJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return respond(ctx, http.StatusBadRequest, "Invalid request body")
	}

	id, err := kernel.UUIDFromBytes(courierID[:])
	if err != nil {
		return s.fail(ctx, "invalid courier id", err)
	}

	cmd, err := commands.NewAddCourierStorageCommand(id, body.Name, body.TotalVolume)
	if err != nil {
		return s.fail(ctx, "invalid storage place", err)
	}

	if err = s.addCourierStorageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "failed to add storage place", err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	orderID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(orderID, defaultOrderStreet, defaultOrderVolume)
	if err != nil {
		return s.fail(ctx, "invalid order", err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "failed to create order", err)
	}
	s.metrics.IncOrdersCreated()

	return ctx.JSON(http.StatusCreated, servers.Created{Id: orderID.Bytes()})
}

// GetOrders handles GET /api/v1/orders/active.
func (s *Server) GetOrders(ctx echo.Context) error {
	orders, err := s.getUncompletedOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetUncompletedOrdersQuery())
	if err != nil {
		return s.fail(ctx, "failed to retrieve orders", err)
	}

	response := make([]servers.Order, 0, len(orders))
	for _, o := range orders {
		response = append(response, servers.Order{
			Id:       o.ID.Bytes(),
			Location: toLocation(o.Location),
			Status:   servers.OrderStatus(o.Status.String()),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// fail maps err to a status code. Validation errors and conflicts are reported to
// the client verbatim; anything else is logged and hidden.
func (s *Server) fail(ctx echo.Context, msg string, err error) error {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return respond(ctx, http.StatusBadRequest, msg+": "+err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return respond(ctx, http.StatusNotFound, msg+": "+err.Error())
	case errors.Is(err, errs.ErrAlreadyExists):
		return respond(ctx, http.StatusConflict, msg+": "+err.Error())
	}

	s.logger.ErrorContext(ctx.Request().Context(), msg, slog.String("error", err.Error()))
	return respond(ctx, http.StatusInternalServerError, msg)
}

func respond(ctx echo.Context, code int, msg string) error {
	return ctx.JSON(code, servers.Error{Code: code, Message: msg})
}

func toLocation(l kernel.Location) servers.Location {
	return servers.Location{X: int(l.X()), Y: int(l.Y())}
}
