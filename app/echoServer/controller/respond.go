package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"videostore/app/echoServer/validation"
	"videostore/util/apperr"

	"github.com/labstack/echo/v4"
)

var statusByCode = map[apperr.ErrCode]int{
	apperr.ErrBadRequest:  http.StatusBadRequest,
	apperr.ErrNotFound:    http.StatusNotFound,
	apperr.ErrConflict:    http.StatusConflict,
	apperr.ErrUnavailable: http.StatusConflict,
	apperr.ErrPersistence: http.StatusBadRequest,
}

// Fail writes the JSON error response for err.
func Fail(c echo.Context, log *slog.Logger, op string, err error) error {
	var fe *validation.FieldErrors
	if errors.As(err, &fe) {
		log.Warn("validation failed", "op", op, "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"details": fe.Details})
	}

	code := apperr.Code(err)
	if status, ok := statusByCode[code]; ok {
		if code == apperr.ErrPersistence {
			log.Warn("persistence rejected write", "op", op, "path", c.Path(), "err", errors.Unwrap(err))
		}
		return c.JSON(status, echo.Map{"message": err.Error()})
	}

	// Unknown → 500 (details only in logs)
	rid := c.Response().Header().Get(echo.HeaderXRequestID)
	log.Error(op+" failed",
		"err", err,
		"req_id", rid,
		"path", c.Path(),
		"method", c.Request().Method,
	)
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
}
