package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken  = errors.New("missing token")
	ErrInvalidToken  = errors.New("invalid token")
	ErrForbiddenRole = errors.New("role not allowed")
)

// Claims are the manager session claims issued by the backend.
type Claims struct {
	Username string   `json:"username,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

type TokenValidator interface {
	Enabled() bool
	Validate(token string) (*Claims, error)
}

type JWTValidator struct {
	secret       []byte
	publicKey    *rsa.PublicKey
	allowedRoles []string
	now          func() time.Time
}

// NewJWTValidator supports RS256 when publicKeyPEM is set and HS256 with secret otherwise.
// With neither configured the validator is disabled and sessions are anonymous.
func NewJWTValidator(secret, publicKeyPEM string, allowedRoles []string) (*JWTValidator, error) {
	v := &JWTValidator{
		secret: []byte(strings.TrimSpace(secret)),
		now:    time.Now,
	}
	for _, role := range allowedRoles {
		if trimmed := strings.ToLower(strings.TrimSpace(role)); trimmed != "" {
			v.allowedRoles = append(v.allowedRoles, trimmed)
		}
	}
	if pem := strings.TrimSpace(publicKeyPEM); pem != "" {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
		if err != nil {
			return nil, fmt.Errorf("parse jwt public key: %w", err)
		}
		v.publicKey = key
	}
	return v, nil
}

func (v *JWTValidator) Enabled() bool {
	return v != nil && (v.publicKey != nil || len(v.secret) > 0)
}

func (v *JWTValidator) Validate(token string) (*Claims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}
	if !v.Enabled() {
		return nil, fmt.Errorf("%w: jwt key not configured", ErrInvalidToken)
	}

	claims := &Claims{}
	parsedToken, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if v.publicKey != nil {
			if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v, expected RS256", t.Header["alg"])
			}
			return v.publicKey, nil
		}
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithLeeway(5*time.Second), jwt.WithTimeFunc(v.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsedToken.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	if len(v.allowedRoles) > 0 && !hasAnyRole(claims.Roles, v.allowedRoles) {
		return nil, fmt.Errorf("%w: %v", ErrForbiddenRole, claims.Roles)
	}
	return claims, nil
}

func hasAnyRole(roles, allowed []string) bool {
	for _, role := range roles {
		if slices.Contains(allowed, strings.ToLower(strings.TrimSpace(role))) {
			return true
		}
	}
	return false
}
