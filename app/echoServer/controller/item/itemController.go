package item

import (
	"log/slog"
	"net/http"
	"strconv"

	"shareit/model"
	itemsvc "shareit/service/item"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc itemsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /items
func (h *Controller) Create(c echo.Context) error {
	var req CreateItemReq
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

	it, err := h.Svc.Create(c.Request().Context(), uid, model.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		return h.fail(c, "item create", err)
	}
	return c.JSON(http.StatusCreated, it)
}

// PATCH /items/:itemId
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	uid, _ := c.Get("user_id").(int64)

	it, err := h.Svc.Update(c.Request().Context(), id, uid, model.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		return h.fail(c, "item update", err)
	}
	return c.JSON(http.StatusOK, it)
}

// GET /items
func (h *Controller) ListOwn(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	items, err := h.Svc.ListByOwner(c.Request().Context(), uid)
	if err != nil {
		return h.fail(c, "item list", err)
	}
	return c.JSON(http.StatusOK, items)
}

// GET /items/:itemId
func (h *Controller) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	it, err := h.Svc.Get(c.Request().Context(), uid, id)
	if err != nil {
		return h.fail(c, "item get", err)
	}
	return c.JSON(http.StatusOK, it)
}

// GET /items/search?text=
func (h *Controller) Search(c echo.Context) error {
	items, err := h.Svc.Search(c.Request().Context(), c.QueryParam("text"))
	if err != nil {
		return h.fail(c, "item search", err)
	}
	return c.JSON(http.StatusOK, items)
}

// POST /items/:itemId/comment
func (h *Controller) AddComment(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req AddCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	uid, _ := c.Get("user_id").(int64)

	cm, err := h.Svc.AddComment(c.Request().Context(), uid, id, req.Text)
	if err != nil {
		return h.fail(c, "comment add", err)
	}
	return c.JSON(http.StatusCreated, cm)
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	h.Log.Error(op, "err", err)
	switch itemsvc.Code(err) {
	case itemsvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
	case itemsvc.ErrValidation:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case itemsvc.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"message": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}
