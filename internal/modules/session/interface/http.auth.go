package transport

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"mesaYaManager/internal/platform/web"
	"mesaYaManager/internal/shared/auth"
)

const sessionFallbackTTL = 12 * time.Hour

// AuthHandler exchanges a backend-issued manager token for a session cookie.
type AuthHandler struct {
	validator    auth.TokenValidator
	secureCookie bool
	now          func() time.Time
}

func NewAuthHandler(validator auth.TokenValidator, secureCookie bool) *AuthHandler {
	return &AuthHandler{validator: validator, secureCookie: secureCookie, now: time.Now}
}

func (h *AuthHandler) Register(e *echo.Echo) {
	e.GET(auth.LoginPath, h.Page)
	e.POST(auth.LoginPath, h.Login)
	e.POST(auth.LoginPath+"/logout", h.Logout)
}

func (h *AuthHandler) enabled() bool {
	return h.validator != nil && h.validator.Enabled()
}

// Page renders the sign-in form, or skips it when sessions are not enforced.
func (h *AuthHandler) Page(c echo.Context) error {
	if !h.enabled() {
		return c.Redirect(http.StatusSeeOther, "/requests")
	}
	return c.Render(http.StatusOK, web.PageAuth, web.AuthPage{Title: "Sign in"})
}

func (h *AuthHandler) Login(c echo.Context) error {
	if !h.enabled() {
		return c.Redirect(http.StatusSeeOther, "/requests")
	}

	token := strings.TrimSpace(c.FormValue("token"))
	claims, err := h.validator.Validate(token)
	if err != nil {
		status, message := http.StatusUnauthorized, "invalid or expired token"
		switch {
		case errors.Is(err, auth.ErrMissingToken):
			status, message = http.StatusBadRequest, "token is required"
		case errors.Is(err, auth.ErrForbiddenRole):
			status, message = http.StatusForbidden, "this account cannot manage the restaurant"
		}
		slog.Warn("manager sign in rejected", slog.String("ip", c.RealIP()), slog.Any("error", err))
		return c.Render(status, web.PageAuth, web.AuthPage{Title: "Sign in", Error: message})
	}

	expires := h.now().Add(sessionFallbackTTL)
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	c.SetCookie(&http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	slog.Info("manager signed in", slog.String("userId", claims.Subject), slog.String("username", claims.Username))
	return c.Redirect(http.StatusSeeOther, "/requests")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, auth.LoginPath)
}
