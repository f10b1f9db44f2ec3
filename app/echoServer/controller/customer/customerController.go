package customer

import (
	"log/slog"
	"net/http"

	"videostore/app/echoServer/controller"
	"videostore/app/echoServer/validation"
	"videostore/model"
	customersvc "videostore/service/customer"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc customersvc.Service
	Log *slog.Logger
}

func (h *Controller) bind(c echo.Context) (model.Customer, error) {
	var req model.CustomerReq
	if err := validation.Bind(c, &req); err != nil {
		return model.Customer{}, err
	}
	if err := c.Validate(&req); err != nil {
		return model.Customer{}, err
	}
	return model.Customer{Name: *req.Name, Phone: *req.Phone, PostalCode: *req.PostalCode}, nil
}

// List customers
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Success      200  {array}  model.Customer
// @Router       /customers [get]
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return controller.Fail(c, h.Log, "customer list", err)
	}
	return c.JSON(http.StatusOK, rows)
}

// Create a customer
// @Summary      Create customer
// @Description  All of name, phone and postal_code are required; missing ones are reported together.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        payload  body  model.CustomerReq  true  "Customer payload"
// @Success      201  {object}  model.Customer
// @Failure      400  {object}  map[string]any
// @Router       /customers [post]
func (h *Controller) Create(c echo.Context) error {
	in, err := h.bind(c)
	if err != nil {
		return controller.Fail(c, h.Log, "customer create", err)
	}
	cust, err := h.Svc.Create(c.Request().Context(), in)
	if err != nil {
		return controller.Fail(c, h.Log, "customer create", err)
	}
	return c.JSON(http.StatusCreated, cust)
}

// GET /customers/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := validation.ParseID(c, "id", "customer id")
	if err != nil {
		return controller.Fail(c, h.Log, "customer detail", err)
	}
	cust, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return controller.Fail(c, h.Log, "customer detail", err)
	}
	return c.JSON(http.StatusOK, cust)
}

// PUT /customers/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := validation.ParseID(c, "id", "customer id")
	if err != nil {
		return controller.Fail(c, h.Log, "customer update", err)
	}
	in, err := h.bind(c)
	if err != nil {
		return controller.Fail(c, h.Log, "customer update", err)
	}
	cust, err := h.Svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return controller.Fail(c, h.Log, "customer update", err)
	}
	return c.JSON(http.StatusOK, cust)
}

// Delete a customer
// @Summary      Delete customer
// @Description  Rejected with 409 while the customer still has videos checked out.
// @Tags         customers
// @Produce      json
// @Param        id   path  int  true  "Customer ID"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Failure      409  {object}  map[string]any
// @Router       /customers/{id} [delete]
func (h *Controller) Delete(c echo.Context) error {
	id, err := validation.ParseID(c, "id", "customer id")
	if err != nil {
		return controller.Fail(c, h.Log, "customer delete", err)
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return controller.Fail(c, h.Log, "customer delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// GET /customers/:id/rentals
func (h *Controller) Rentals(c echo.Context) error {
	id, err := validation.ParseID(c, "id", "customer id")
	if err != nil {
		return controller.Fail(c, h.Log, "customer rentals", err)
	}
	rows, err := h.Svc.Rentals(c.Request().Context(), id)
	if err != nil {
		return controller.Fail(c, h.Log, "customer rentals", err)
	}
	return c.JSON(http.StatusOK, rows)
}
