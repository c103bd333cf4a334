package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sumire/pixelboard/internal/service"
)

// Register wires middleware and routes onto e.
func Register(e *echo.Echo, auth *service.AuthService, ah *AuthHandler, bh *BoardHandler) {
	e.HTTPErrorHandler = HTTPErrorHandler
	e.Validator = ah.validator

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(RequestLogger())
	e.Use(SessionAuth(auth))

	e.GET("/auth/signin/:provider", ah.SignIn)
	e.GET("/auth/:provider", ah.Callback)
	e.POST("/signup", ah.SignUp)
	e.Any("/logout", ah.Logout)

	e.GET("/info", bh.Info)
	e.GET("/data", bh.Data)
	e.GET("/lookup", bh.Lookup)
}
