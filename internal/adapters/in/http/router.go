package http

import (
	"net/http"

	"dispatch/internal/generated/docs"
	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance with the API, health, metrics and
// documentation routes.
func NewRouter(server servers.ServerInterface, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	docs.SwaggerInfo.BasePath = "/"
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/api/v1/openapi.json", func(c echo.Context) error {
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, servers.RawSpec())
	})

	servers.RegisterHandlers(e, server)
	return e
}
