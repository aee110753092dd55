package echoServer

import (
	"net/http"

	"shareit/app/echoServer/controller/booking"
	"shareit/app/echoServer/controller/item"
	"shareit/app/echoServer/controller/request"
	"shareit/app/echoServer/controller/user"

	"github.com/labstack/echo/v4"
)

type C struct {
	User    *user.Controller
	Item    *item.Controller
	Booking *booking.Controller
	Request *request.Controller
}

func Register(e *echo.Echo, c C) {
	e.GET("/health", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, echo.Map{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	// Public: user administration and anonymous item lookup
	e.POST("/users", c.User.Create)
	e.PATCH("/users/:userId", c.User.Update)
	e.GET("/users", c.User.List)
	e.GET("/users/:userId", c.User.Get)
	e.DELETE("/users/:userId", c.User.Delete)

	e.GET("/items/search", c.Item.Search)
	e.GET("/items/:itemId", c.Item.Get, SharerID(false))

	// Identified by X-Sharer-User-Id
	items := e.Group("/items", SharerID(true))
	items.POST("", c.Item.Create)
	items.PATCH("/:itemId", c.Item.Update)
	items.GET("", c.Item.ListOwn)
	items.POST("/:itemId/comment", c.Item.AddComment)

	bookings := e.Group("/bookings", SharerID(true))
	bookings.POST("", c.Booking.Create)
	bookings.PATCH("/:bookingId", c.Booking.SetApproval)
	bookings.GET("/owner", c.Booking.ListForOwner)
	bookings.GET("/:bookingId", c.Booking.Get)
	bookings.GET("", c.Booking.ListForBooker)

	requests := e.Group("/requests", SharerID(true))
	requests.POST("", c.Request.Create)
	requests.GET("", c.Request.Own)
	requests.GET("/all", c.Request.All)
	requests.GET("/:requestId", c.Request.Get)
}
