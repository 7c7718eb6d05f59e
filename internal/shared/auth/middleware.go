package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	contextToken  = "auth.token"
	contextClaims = "auth.claims"
)

// LoginPath is where browsers without a valid session are sent.
const LoginPath = "/auth"

// RequireManager validates the manager session when the validator is enabled and stores the
// token for forwarding to the backend. With auth disabled any token present is still forwarded.
func RequireManager(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractToken(c.Request(), "token")
			if validator == nil || !validator.Enabled() {
				c.Set(contextToken, token)
				return next(c)
			}

			claims, err := validator.Validate(token)
			if err != nil {
				slog.Warn("manager session rejected", slog.String("path", c.Path()), slog.String("ip", c.RealIP()), slog.Any("error", err))
				if wantsHTML(c.Request()) {
					return c.Redirect(http.StatusSeeOther, LoginPath)
				}
				if errors.Is(err, ErrForbiddenRole) {
					return echo.NewHTTPError(http.StatusForbidden, "forbidden")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
			}
			c.Set(contextToken, token)
			c.Set(contextClaims, claims)
			return next(c)
		}
	}
}

// TokenFrom returns the session token stored by RequireManager.
func TokenFrom(c echo.Context) string {
	token, _ := c.Get(contextToken).(string)
	return token
}

// ClaimsFrom returns the validated claims, nil when auth is disabled.
func ClaimsFrom(c echo.Context) *Claims {
	claims, _ := c.Get(contextClaims).(*Claims)
	return claims
}

func wantsHTML(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}
	if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
		return false
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
