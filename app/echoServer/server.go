package echoServer

import (
	"log/slog"
	"net/http"

	"videostore/app/echoServer/validation"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// New builds the echo instance with middlewares, health, docs and API routes.
func New(log *slog.Logger, c C) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()
	e.JSONSerializer = JSONSerializer{}

	RegisterMiddlewares(e, log)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	Register(e, c)
	return e
}
