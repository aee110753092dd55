package user

import (
	"log/slog"
	"net/http"
	"strconv"

	"shareit/model"
	usersvc "shareit/service/user"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc usersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /users
func (h *Controller) Create(c echo.Context) error {
	var req CreateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	u, err := h.Svc.Create(c.Request().Context(), model.User{Name: req.Name, Email: req.Email})
	if err != nil {
		return h.fail(c, "user create", err)
	}
	return c.JSON(http.StatusCreated, u)
}

// PATCH /users/:userId
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}

	u, err := h.Svc.Update(c.Request().Context(), id, model.User{Name: req.Name, Email: req.Email})
	if err != nil {
		return h.fail(c, "user update", err)
	}
	return c.JSON(http.StatusOK, u)
}

// GET /users
func (h *Controller) List(c echo.Context) error {
	users, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return h.fail(c, "user list", err)
	}
	return c.JSON(http.StatusOK, users)
}

// GET /users/:userId
func (h *Controller) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	u, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "user get", err)
	}
	return c.JSON(http.StatusOK, u)
}

// DELETE /users/:userId
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, "user delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	h.Log.Error(op, "err", err)
	switch usersvc.Code(err) {
	case usersvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
	case usersvc.ErrValidation:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case usersvc.ErrEmailTaken:
		return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
