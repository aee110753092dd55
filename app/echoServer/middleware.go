package echoServer

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HeaderSharerUserID carries the acting user's id on every identified call.
const HeaderSharerUserID = "X-Sharer-User-Id"

func RegisterMiddlewares(e *echo.Echo) {

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(Slog())
}

func Slog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			lat := time.Since(start).Milliseconds()

			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			slog.Info("http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", lat,
				"req_id", rid,
				"ip", c.RealIP(),
				"ua", c.Request().UserAgent(),
			)
			return err
		}
	}
}

// SharerID resolves the acting user from the X-Sharer-User-Id header and
// stores it as "user_id" in the context. When required is false the header
// may be absent and handlers see user_id 0.
func SharerID(required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header.Get(HeaderSharerUserID)
			if h == "" {
				if required {
					return c.JSON(http.StatusBadRequest, echo.Map{"message": HeaderSharerUserID + " header is required"})
				}
				return next(c)
			}
			id, err := strconv.ParseInt(h, 10, 64)
			if err != nil || id <= 0 {
				return c.JSON(http.StatusBadRequest, echo.Map{"message": HeaderSharerUserID + " header is invalid"})
			}
			c.Set("user_id", id)
			return next(c)
		}
	}
}
