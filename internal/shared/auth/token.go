package auth

import (
	"net/http"
	"strings"
)

// CookieName holds the manager session token in the browser.
const CookieName = "manager_token"

// ExtractBearerTokenFromHeader extracts the JWT from an Authorization header value.
func ExtractBearerTokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

// ExtractToken looks in order at the Authorization header, the session cookie and the
// query parameter (browsers cannot set headers on websocket upgrades).
func ExtractToken(r *http.Request, queryParam string) string {
	if r == nil {
		return ""
	}
	if token := ExtractBearerTokenFromHeader(r.Header.Get("Authorization")); token != "" {
		return token
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		if token := strings.TrimSpace(cookie.Value); token != "" {
			return token
		}
	}
	if queryParam == "" {
		queryParam = "token"
	}
	if r.URL == nil {
		return ""
	}
	return strings.TrimSpace(r.URL.Query().Get(queryParam))
}
