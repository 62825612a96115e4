package jwt

import (
	"errors"

	libJWT "github.com/golang-jwt/jwt/v5"
)

// Symmetric implements JWT with an HMAC-SHA512 shared secret.
type Symmetric struct {
	cfg Config
}

// NewHS512 validates the key length and returns a Symmetric signer.
func NewHS512(cfg Config) (*Symmetric, error) {
	if len(cfg.Secret) < 64 {
		return nil, ErrSigningKeyTooShort
	}
	return &Symmetric{cfg: cfg}, nil
}

func (s *Symmetric) Generate(subject string, scopes ...string) (string, error) {
	now := s.cfg.Clock.Now()

	claims := Claims{
		RegisteredClaims: libJWT.RegisteredClaims{
			ID:        s.cfg.UUID.Generate(),
			Subject:   subject,
			Issuer:    s.cfg.Issuer,
			Audience:  s.cfg.Audiences,
			IssuedAt:  libJWT.NewNumericDate(now),
			NotBefore: libJWT.NewNumericDate(now),
			ExpiresAt: libJWT.NewNumericDate(now.Add(s.cfg.TTL)),
		},
		Scopes: scopes,
	}

	return libJWT.NewWithClaims(libJWT.SigningMethodHS512, claims).SignedString(s.cfg.Secret)
}

func (s *Symmetric) Verify(tokenStr string) (Claims, error) {
	var claims Claims

	opts := []libJWT.ParserOption{
		libJWT.WithIssuer(s.cfg.Issuer),
		libJWT.WithValidMethods([]string{libJWT.SigningMethodHS512.Alg()}),
		libJWT.WithIssuedAt(),
		libJWT.WithExpirationRequired(),
		libJWT.WithTimeFunc(s.cfg.Clock.Now),
	}
	if len(s.cfg.Audiences) > 0 {
		opts = append(opts, libJWT.WithAudience(s.cfg.Audiences...))
	}

	token, err := libJWT.ParseWithClaims(tokenStr, &claims, func(t *libJWT.Token) (any, error) {
		if t.Method != libJWT.SigningMethodHS512 {
			return nil, ErrInvalidSigningMethod
		}
		return s.cfg.Secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, libJWT.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, err
	}

	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}
