package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sumire/pixelboard/internal/domain"
	"github.com/sumire/pixelboard/internal/service"
)

// signupPage is where browsers land to finish account creation. The signup
// token rides along both as a cookie and a query parameter so the page works
// even when one channel is blocked.
const signupPage = "/signup.html"

// AuthHandler drives the OAuth sign-in, callback, sign-up, and logout flows.
// Every failure in these flows exits with a redirect: provider-side
// rejection detail must never reach an unauthenticated client.
type AuthHandler struct {
	auth      *service.AuthService
	validator *AppValidator

	cookieSecure bool
	signupTTL    time.Duration
	sessionTTL   time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, v *AppValidator, cookieSecure bool, signupTTL, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		validator:    v,
		cookieSecure: cookieSecure,
		signupTTL:    signupTTL,
		sessionTTL:   sessionTTL,
	}
}

// SignIn redirects the browser to the provider's authorization URL.
func (h *AuthHandler) SignIn(c echo.Context) error {
	authURL, ok := h.auth.AuthURL(c.Param("provider"))
	if !ok {
		return echo.ErrNotFound
	}
	return c.Redirect(http.StatusSeeOther, authURL)
}

// Callback handles the OAuth return leg. Unknown providers get a 404;
// everything else, success or failure, leaves with a 303.
func (h *AuthHandler) Callback(c echo.Context) error {
	providerName := c.Param("provider")
	if !h.auth.HasProvider(providerName) {
		return echo.ErrNotFound
	}

	code := c.QueryParam("code")
	if code == "" {
		// user cancelled at the provider, nothing to exchange
		return c.Redirect(http.StatusSeeOther, "/")
	}

	result, err := h.auth.Callback(c.Request().Context(), providerName, code, c.RealIP())
	if err != nil {
		if !errors.Is(err, service.ErrAuthRejected) {
			slog.Error("oauth callback failed", "provider", providerName, "error", err)
		}
		return c.Redirect(http.StatusSeeOther, "/")
	}

	if result.SignupToken != "" {
		h.setCookie(c, signupCookieName, result.SignupToken, h.signupTTL)
		return c.Redirect(http.StatusSeeOther, signupPage+"?token="+url.QueryEscape(result.SignupToken))
	}

	h.setCookie(c, sessionCookieName, result.SessionToken, h.sessionTTL)
	return c.Redirect(http.StatusSeeOther, "/")
}

// SignUp completes account creation from the signup form. Validation runs
// in a fixed order and the first failure redirects back to the signup page
// with a human-readable error.
func (h *AuthHandler) SignUp(c echo.Context) error {
	token := c.FormValue("token")
	name := c.FormValue("name")

	if token == "" {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	if name == "" {
		return h.signupError(c, token, "Username cannot be empty.")
	}
	if len(name) > domain.MaxUsernameLen {
		name = name[:domain.MaxUsernameLen]
	}
	if err := h.validator.Username(name); err != nil {
		return h.signupError(c, token, "Name contains invalid characters.")
	}

	session, err := h.auth.CompleteSignup(c.Request().Context(), token, name, c.RealIP())
	switch {
	case errors.Is(err, domain.ErrInvalidToken):
		return h.signupError(c, token, "Invalid signup token.")
	case errors.Is(err, domain.ErrConflict):
		return h.signupError(c, token, "Username is taken, try another?")
	case err != nil:
		slog.Error("signup failed", "error", err)
		return c.Redirect(http.StatusSeeOther, "/")
	}

	h.setCookie(c, sessionCookieName, session, h.sessionTTL)
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout invalidates the session behind the cookie, if any, and always
// redirects to the root.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if err := h.auth.Logout(c.Request().Context(), cookie.Value); err != nil {
			slog.Error("logout failed", "error", err)
		}
		h.clearCookie(c, sessionCookieName)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) signupError(c echo.Context, token, msg string) error {
	q := url.Values{}
	q.Set("token", token)
	q.Set("error", msg)
	return c.Redirect(http.StatusSeeOther, signupPage+"?"+q.Encode())
}

func (h *AuthHandler) setCookie(c echo.Context, name, value string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
	})
}
