package servers

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List all couriers
	// (GET /api/v1/couriers)
	GetCouriers(ctx echo.Context) error
	// Register a courier at a random location
	// (POST /api/v1/couriers)
	CreateCourier(ctx echo.Context) error
	// Add a storage place to a courier
	// (POST /api/v1/couriers/{courierId}/storage-places)
	AddStoragePlace(ctx echo.Context, courierId openapi_types.UUID) error
	// Create an order at a random location
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// List orders that are not completed
	// (GET /api/v1/orders/active)
	GetOrders(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) GetCouriers(ctx echo.Context) error {
	return w.Handler.GetCouriers(ctx)
}

func (w *ServerInterfaceWrapper) CreateCourier(ctx echo.Context) error {
	return w.Handler.CreateCourier(ctx)
}

func (w *ServerInterfaceWrapper) AddStoragePlace(ctx echo.Context) error {
	var courierId openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", "courierId", ctx.Param("courierId"), &courierId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter courierId: %s", err))
	}

	return w.Handler.AddStoragePlace(ctx, courierId)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetOrders(ctx echo.Context) error {
	return w.Handler.GetOrders(ctx)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/api/v1/couriers", wrapper.GetCouriers)
	router.POST(baseURL+"/api/v1/couriers", wrapper.CreateCourier)
	router.POST(baseURL+"/api/v1/couriers/:courierId/storage-places", wrapper.AddStoragePlace)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/active", wrapper.GetOrders)
}

//go:embed openapi.json
var rawSpec []byte

// RawSpec returns the OpenAPI document as JSON.
func RawSpec() []byte {
	return rawSpec
}

// GetSwagger parses the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading OpenAPI spec: %w", err)
	}
	return swagger, nil
}
