package rental

import (
	"log/slog"
	"net/http"

	"videostore/app/echoServer/controller"
	"videostore/app/echoServer/validation"
	"videostore/model"
	rs "videostore/service/rental"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc rs.Service
	Log *slog.Logger
}

func bindKey(c echo.Context) (customerID, videoID int64, err error) {
	var req model.RentalReq
	if err := validation.Bind(c, &req); err != nil {
		return 0, 0, err
	}
	if err := c.Validate(&req); err != nil {
		return 0, 0, err
	}
	return *req.CustomerID, *req.VideoID, nil
}

// Check out a video
// @Summary      Check out
// @Description  Opens a rental due in the configured rental period. 409 when no copy is available.
// @Tags         rentals
// @Accept       json
// @Produce      json
// @Param        payload  body  model.RentalReq  true  "Customer and video"
// @Success      200  {object}  model.RentalSummary
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Failure      409  {object}  map[string]any
// @Router       /rentals/check-out [post]
func (h *Controller) CheckOut(c echo.Context) error {
	cid, vid, err := bindKey(c)
	if err != nil {
		return controller.Fail(c, h.Log, "rental check-out", err)
	}
	out, err := h.Svc.CheckOut(c.Request().Context(), cid, vid)
	if err != nil {
		return controller.Fail(c, h.Log, "rental check-out", err)
	}
	h.Log.Info("rental opened", "rental_id", out.ID, "customer_id", cid, "video_id", vid)
	return c.JSON(http.StatusOK, out)
}

// POST /rentals/check-in
func (h *Controller) CheckIn(c echo.Context) error {
	cid, vid, err := bindKey(c)
	if err != nil {
		return controller.Fail(c, h.Log, "rental check-in", err)
	}
	out, err := h.Svc.CheckInByKey(c.Request().Context(), cid, vid)
	if err != nil {
		return controller.Fail(c, h.Log, "rental check-in", err)
	}
	h.Log.Info("rental closed", "rental_id", out.ID, "customer_id", cid, "video_id", vid)
	return c.JSON(http.StatusOK, out)
}

// POST /rentals/:id/check-in
func (h *Controller) CheckInByID(c echo.Context) error {
	id, err := validation.ParseID(c, "id", "rental id")
	if err != nil {
		return controller.Fail(c, h.Log, "rental check-in", err)
	}
	out, err := h.Svc.CheckIn(c.Request().Context(), id)
	if err != nil {
		return controller.Fail(c, h.Log, "rental check-in", err)
	}
	h.Log.Info("rental closed", "rental_id", out.ID)
	return c.JSON(http.StatusOK, out)
}
