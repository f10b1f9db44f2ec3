package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"videostore/model"
	"videostore/util/apperr"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newCtx(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestValidate_ReportsAllMissing(t *testing.T) {
	v := New()
	err := v.Validate(&model.CustomerReq{})
	var fe *FieldErrors
	require.ErrorAs(t, err, &fe)
	require.Equal(t, []string{
		"Request body must include name.",
		"Request body must include phone.",
		"Request body must include postal_code.",
	}, fe.Details)
}

func TestValidate_VideoKinds(t *testing.T) {
	v := New()
	title, bad := "Movie", "yesterday"
	neg := int64(-1)
	err := v.Validate(&model.VideoReq{Title: &title, ReleaseDate: &bad, TotalInventory: &neg})
	var fe *FieldErrors
	require.ErrorAs(t, err, &fe)
	require.Equal(t, []string{
		"Request body field release_date is invalid.",
		"Request body field total_inventory is invalid.",
	}, fe.Details)

	good, zero := "2021-01-01", int64(0)
	require.NoError(t, v.Validate(&model.VideoReq{Title: &title, ReleaseDate: &good, TotalInventory: &zero}))
}

func TestBind_WrongKind(t *testing.T) {
	var req model.VideoReq
	err := Bind(newCtx(`{"title":"Movie","release_date":"2021-01-01","total_inventory":"many"}`), &req)
	var fe *FieldErrors
	require.ErrorAs(t, err, &fe)
	require.Equal(t, []string{"Request body field total_inventory is invalid."}, fe.Details)
}

func TestBind_Success(t *testing.T) {
	var req model.CustomerReq
	require.NoError(t, Bind(newCtx(`{"name":"Ada","phone":"555","postal_code":"12345","extra":true}`), &req))
	require.Equal(t, "Ada", *req.Name)
	require.Equal(t, "12345", *req.PostalCode)
}

func TestBind_EmptyAndGarbage(t *testing.T) {
	var req model.CustomerReq
	require.NoError(t, Bind(newCtx(""), &req))
	require.Nil(t, req.Name)

	err := Bind(newCtx(`[1,2]`), &req)
	var fe *FieldErrors
	require.ErrorAs(t, err, &fe)
}

func TestParseID(t *testing.T) {
	c := newCtx("")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	_, err := ParseID(c, "id", "customer id")
	require.Equal(t, apperr.ErrBadRequest, apperr.Code(err))
	require.EqualError(t, err, "customer id must be an integer.")

	c.SetParamValues("12")
	id, err := ParseID(c, "id", "customer id")
	require.NoError(t, err)
	require.Equal(t, int64(12), id)
}
