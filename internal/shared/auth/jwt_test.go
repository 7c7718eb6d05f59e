package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signHS256(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func managerClaims(expires time.Time, roles ...string) Claims {
	return Claims{
		Username: "manager",
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
}

func TestJWTValidator_DisabledWithoutKeys(t *testing.T) {
	t.Parallel()

	v, err := NewJWTValidator("", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Enabled() {
		t.Fatal("validator without keys must be disabled")
	}
	if _, err := v.Validate("anything"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTValidator_ValidatesHS256(t *testing.T) {
	t.Parallel()

	v, _ := NewJWTValidator("secret", "", []string{"Manager"})
	token := signHS256(t, "secret", managerClaims(time.Now().Add(time.Hour), "manager"))

	claims, err := v.Validate(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "42" || claims.Username != "manager" {
		t.Fatalf("unexpected claims: %#v", claims)
	}
}

func TestJWTValidator_Rejections(t *testing.T) {
	t.Parallel()

	v, _ := NewJWTValidator("secret", "", []string{"manager"})

	if _, err := v.Validate(" "); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	expired := signHS256(t, "secret", managerClaims(time.Now().Add(-time.Hour), "manager"))
	if _, err := v.Validate(expired); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
	wrongKey := signHS256(t, "other", managerClaims(time.Now().Add(time.Hour), "manager"))
	if _, err := v.Validate(wrongKey); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong key, got %v", err)
	}
	waiter := signHS256(t, "secret", managerClaims(time.Now().Add(time.Hour), "waiter"))
	if _, err := v.Validate(waiter); !errors.Is(err, ErrForbiddenRole) {
		t.Fatalf("expected ErrForbiddenRole, got %v", err)
	}
}

func TestJWTValidator_RejectsBadPublicKey(t *testing.T) {
	t.Parallel()

	if _, err := NewJWTValidator("", "not a pem", nil); err == nil {
		t.Fatal("expected error for malformed public key")
	}
}

func TestExtractToken_Precedence(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/ws/dashboard?token=query", nil)
	if got := ExtractToken(req, ""); got != "query" {
		t.Fatalf("expected query token, got %q", got)
	}

	req.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie"})
	if got := ExtractToken(req, "token"); got != "cookie" {
		t.Fatalf("expected cookie token, got %q", got)
	}

	req.Header.Set("Authorization", "bearer header")
	if got := ExtractToken(req, "token"); got != "header" {
		t.Fatalf("expected header token, got %q", got)
	}

	if got := ExtractBearerTokenFromHeader("Basic abc"); got != "" {
		t.Fatalf("non bearer header should be ignored, got %q", got)
	}
}
