package request

import (
	"log/slog"
	"net/http"
	"strconv"

	requestsvc "shareit/service/request"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc requestsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /requests
func (h *Controller) Create(c echo.Context) error {
	var req CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Create(c.Request().Context(), uid, req.Description)
	if err != nil {
		return h.fail(c, "request create", err)
	}
	return c.JSON(http.StatusCreated, out)
}

// GET /requests
func (h *Controller) Own(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	out, err := h.Svc.Own(c.Request().Context(), uid)
	if err != nil {
		return h.fail(c, "request own list", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /requests/all?from=&size=
func (h *Controller) All(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	from := 0
	if v := c.QueryParam("from"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "from must be an integer"})
		}
		from = n
	}
	size := 10
	if v := c.QueryParam("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "size must be an integer"})
		}
		size = n
	}

	out, err := h.Svc.AllOthers(c.Request().Context(), uid, from, size)
	if err != nil {
		return h.fail(c, "request all list", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /requests/:requestId
func (h *Controller) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("requestId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Get(c.Request().Context(), uid, id)
	if err != nil {
		return h.fail(c, "request get", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	h.Log.Error(op, "err", err)
	switch requestsvc.Code(err) {
	case requestsvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
	case requestsvc.ErrValidation:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
