package handler

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sumire/pixelboard/internal/domain"
	"github.com/sumire/pixelboard/internal/service"
)

const (
	sessionCookieName = "session-token"
	signupCookieName  = "signup-token"

	contextKeyUser = "user"
)

// RequestLogger logs each HTTP request with structured fields.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			slog.Info("http request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)

			return err
		}
	}
}

// SessionAuth resolves the session cookie to a user and stores it in the
// echo context. A missing, expired, or unknown token is not an error; the
// request simply proceeds unauthenticated.
func SessionAuth(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
				if user, err := auth.UserByToken(c.Request().Context(), cookie.Value); err == nil {
					c.Set(contextKeyUser, user)
				}
			}
			return next(c)
		}
	}
}

// CurrentUser extracts the authenticated user from echo context.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(contextKeyUser).(*domain.User)
	return user, ok
}
