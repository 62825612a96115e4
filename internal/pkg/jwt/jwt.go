package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidSigningMethod = errors.New("invalid JWT signing method")
	ErrSigningKeyTooShort   = errors.New("HS512 signing key must be at least 64 bytes")
	ErrTokenExpired         = errors.New("JWT token has expired")
	ErrInvalidToken         = errors.New("invalid token")
)

// JWT signs and verifies service tokens.
type JWT interface {
	Generate(subject string, scopes ...string) (string, error)
	Verify(tokenStr string) (Claims, error)
}

type clocker interface {
	Now() time.Time
}

type generator interface {
	Generate() string
}

// Config defines the inputs for building a JWT implementation.
type Config struct {
	Secret    []byte
	Issuer    string
	Audiences []string
	TTL       time.Duration
	Clock     clocker
	UUID      generator
}

// Claims are the registered claims plus the scopes granted to the caller.
type Claims struct {
	jwt.RegisteredClaims
	Scopes []string `json:"scopes,omitempty"`
}

// HasScope reports whether the token grants scope. A token without scopes
// grants everything in its audience.
func (c Claims) HasScope(scope string) bool {
	if len(c.Scopes) == 0 {
		return true
	}
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

type ctxKey struct{}

// GetAuth returns the claims stored by SetAuth, or nil.
func GetAuth(ctx context.Context) *Claims {
	clm, ok := ctx.Value(ctxKey{}).(Claims)
	if !ok {
		return nil
	}
	return &clm
}

// SetAuth stores verified claims in ctx.
func SetAuth(ctx context.Context, clm Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, clm)
}
