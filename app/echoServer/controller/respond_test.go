package controller

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"videostore/app/echoServer/validation"
	"videostore/util/apperr"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestFail_StatusMapping(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"field errors", &validation.FieldErrors{Details: []string{"Request body must include name."}}, http.StatusBadRequest, `{"details":["Request body must include name."]}`},
		{"bad request", apperr.BadRequest("video id must be an integer."), http.StatusBadRequest, `{"message":"video id must be an integer."}`},
		{"not found", apperr.NotFound("Video", 4), http.StatusNotFound, `{"message":"Video 4 was not found"}`},
		{"conflict", apperr.Conflict("Rental 2 is already checked in"), http.StatusConflict, `{"message":"Rental 2 is already checked in"}`},
		{"unavailable", fmt.Errorf("wrapped: %w", apperr.Unavailable("Video 1 has no available inventory")), http.StatusConflict, `{"message":"wrapped: Video 1 has no available inventory"}`},
		{"persistence", apperr.FromDB(&pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation}), http.StatusBadRequest, `{"message":"Invalid data type in request body"}`},
		{"unknown", errors.New("pool closed"), http.StatusInternalServerError, `{"message":"internal error"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			assert.NoError(t, Fail(c, log, "test", tc.err))
			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, tc.body, rec.Body.String())
		})
	}
}
