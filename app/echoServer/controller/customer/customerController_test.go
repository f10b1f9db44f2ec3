package customer

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"videostore/app/echoServer/validation"
	"videostore/model"
	customersvc "videostore/service/customer"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type svcMock struct {
	customersvc.Service
	createFn func(ctx context.Context, in model.Customer) (*model.Customer, error)
	getFn    func(ctx context.Context, id int64) (*model.Customer, error)
}

func (m *svcMock) Create(ctx context.Context, in model.Customer) (*model.Customer, error) {
	return m.createFn(ctx, in)
}

func (m *svcMock) Get(ctx context.Context, id int64) (*model.Customer, error) {
	return m.getFn(ctx, id)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validation.New()
	return e
}

func TestCreate_MissingFieldsNeverReachService(t *testing.T) {
	called := false
	h := &Controller{
		Svc: &svcMock{createFn: func(ctx context.Context, in model.Customer) (*model.Customer, error) {
			called = true
			return nil, nil
		}},
		Log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	e := newEcho()
	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(`{"name":"Ada"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Create(e.NewContext(req, rec)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, called)
}

func TestCreate_PassesTypedRecord(t *testing.T) {
	h := &Controller{
		Svc: &svcMock{createFn: func(ctx context.Context, in model.Customer) (*model.Customer, error) {
			require.Equal(t, model.Customer{Name: "Ada", Phone: "555", PostalCode: "12345"}, in)
			in.ID = 1
			return &in, nil
		}},
		Log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	e := newEcho()
	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(`{"name":"Ada","phone":"555","postal_code":"12345"}`))
	rec := httptest.NewRecorder()

	require.NoError(t, h.Create(e.NewContext(req, rec)))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"id":1`)
}

func TestDetail_NonIntegerIDSkipsLookup(t *testing.T) {
	h := &Controller{
		Svc: &svcMock{getFn: func(ctx context.Context, id int64) (*model.Customer, error) {
			t.Fatal("lookup must not run for a malformed id")
			return nil, nil
		}},
		Log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	e := newEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/customers/abc", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, h.Detail(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
