package booking

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	bookingsvc "shareit/service/booking"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc bookingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /bookings
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookingReq
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

	b, err := h.Svc.Create(c.Request().Context(), uid, req.ItemID, req.Start, req.End)
	if err != nil {
		return h.fail(c, "booking create", err)
	}
	return c.JSON(http.StatusCreated, b)
}

// PATCH /bookings/:bookingId?approved=
func (h *Controller) SetApproval(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "approved must be true or false"})
	}
	uid, _ := c.Get("user_id").(int64)

	b, err := h.Svc.SetApproval(c.Request().Context(), uid, id, approved)
	if err != nil {
		return h.fail(c, "booking approval", err)
	}
	return c.JSON(http.StatusOK, b)
}

// GET /bookings/:bookingId
func (h *Controller) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	b, err := h.Svc.Get(c.Request().Context(), uid, id)
	if err != nil {
		return h.fail(c, "booking get", err)
	}
	return c.JSON(http.StatusOK, b)
}

// GET /bookings?state=&from=&size=
func (h *Controller) ListForBooker(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	state, from, size, err := listParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	out, err := h.Svc.ListForBooker(c.Request().Context(), uid, state, from, size)
	if err != nil {
		return h.fail(c, "booking list", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /bookings/owner?state=&from=&size=
func (h *Controller) ListForOwner(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	state, from, size, err := listParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	out, err := h.Svc.ListForOwner(c.Request().Context(), uid, state, from, size)
	if err != nil {
		return h.fail(c, "booking owner list", err)
	}
	return c.JSON(http.StatusOK, out)
}

func listParams(c echo.Context) (state string, from, size int, err error) {
	state = c.QueryParam("state")
	if state == "" {
		state = "ALL"
	}
	from = 0
	if v := c.QueryParam("from"); v != "" {
		if from, err = strconv.Atoi(v); err != nil {
			return "", 0, 0, errors.New("from must be an integer")
		}
	}
	size = 10
	if v := c.QueryParam("size"); v != "" {
		if size, err = strconv.Atoi(v); err != nil {
			return "", 0, 0, errors.New("size must be an integer")
		}
	}
	return state, from, size, nil
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	h.Log.Error(op, "err", err)
	switch bookingsvc.Code(err) {
	case bookingsvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
	case bookingsvc.ErrValidation, bookingsvc.ErrUnknownState:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case bookingsvc.ErrAlreadyDone:
		return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
