package video

import (
	"log/slog"
	"net/http"

	"videostore/app/echoServer/controller"
	"videostore/app/echoServer/validation"
	"videostore/model"
	videosvc "videostore/service/video"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc videosvc.Service
	Log *slog.Logger
}

func (h *Controller) bind(c echo.Context) (model.Video, error) {
	var req model.VideoReq
	if err := validation.Bind(c, &req); err != nil {
		return model.Video{}, err
	}
	if err := c.Validate(&req); err != nil {
		return model.Video{}, err
	}
	released, err := model.ParseDate(*req.ReleaseDate)
	if err != nil {
		return model.Video{}, &validation.FieldErrors{Details: []string{"Request body field release_date is invalid."}}
	}
	return model.Video{Title: *req.Title, ReleaseDate: released, TotalInventory: *req.TotalInventory}, nil
}

// GET /videos
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return controller.Fail(c, h.Log, "video list", err)
	}
	return c.JSON(http.StatusOK, rows)
}

// Create a video
// @Summary      Create video
// @Description  title, release_date (YYYY-MM-DD) and total_inventory (>= 0) are required.
// @Tags         videos
// @Accept       json
// @Produce      json
// @Param        payload  body  model.VideoReq  true  "Video payload"
// @Success      201  {object}  model.Video
// @Failure      400  {object}  map[string]any
// @Router       /videos [post]
func (h *Controller) Create(c echo.Context) error {
	in, err := h.bind(c)
	if err != nil {
		return controller.Fail(c, h.Log, "video create", err)
	}
	v, err := h.Svc.Create(c.Request().Context(), in)
	if err != nil {
		return controller.Fail(c, h.Log, "video create", err)
	}
	return c.JSON(http.StatusCreated, v)
}

// GET /videos/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := validation.ParseID(c, "id", "video id")
	if err != nil {
		return controller.Fail(c, h.Log, "video detail", err)
	}
	v, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return controller.Fail(c, h.Log, "video detail", err)
	}
	return c.JSON(http.StatusOK, v)
}

// PUT /videos/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := validation.ParseID(c, "id", "video id")
	if err != nil {
		return controller.Fail(c, h.Log, "video update", err)
	}
	in, err := h.bind(c)
	if err != nil {
		return controller.Fail(c, h.Log, "video update", err)
	}
	v, err := h.Svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return controller.Fail(c, h.Log, "video update", err)
	}
	return c.JSON(http.StatusOK, v)
}

// DELETE /videos/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := validation.ParseID(c, "id", "video id")
	if err != nil {
		return controller.Fail(c, h.Log, "video delete", err)
	}
	v, err := h.Svc.Delete(c.Request().Context(), id)
	if err != nil {
		return controller.Fail(c, h.Log, "video delete", err)
	}
	return c.JSON(http.StatusOK, v)
}

// Customers holding a video
// @Summary      Current renters
// @Description  Customers with an open rental of the video, with due dates.
// @Tags         videos
// @Produce      json
// @Param        id   path  int  true  "Video ID"
// @Success      200  {array}   model.Renter
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /videos/{id}/rentals [get]
func (h *Controller) Rentals(c echo.Context) error {
	id, err := validation.ParseID(c, "id", "video id")
	if err != nil {
		return controller.Fail(c, h.Log, "video rentals", err)
	}
	rows, err := h.Svc.Renters(c.Request().Context(), id)
	if err != nil {
		return controller.Fail(c, h.Log, "video rentals", err)
	}
	return c.JSON(http.StatusOK, rows)
}
