package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const TypeRefresh = "refresh"

// Claims are the session claims carried by both access and refresh tokens.
// Access tokens carry no Type; refresh tokens carry Type == TypeRefresh.
type Claims struct {
	Type string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// IsRefresh reports whether the claims belong to a refresh token.
func (c *Claims) IsRefresh() bool {
	return c.Type == TypeRefresh
}

// Codec signs and verifies session tokens with a shared symmetric secret.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
}

// NewCodec builds a codec for the named HMAC signing algorithm
// (HS256, HS384 or HS512).
func NewCodec(secret, algorithm string) (*Codec, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q, expected HMAC family", algorithm)
	}

	return &Codec{
		secret: []byte(secret),
		method: method,
	}, nil
}

// NewAccessClaims builds claims for a short-lived access token.
func NewAccessClaims(subject string, ttl time.Duration) Claims {
	return newClaims(subject, ttl, "")
}

// NewRefreshClaims builds claims for a long-lived refresh token.
func NewRefreshClaims(subject string, ttl time.Duration) Claims {
	return newClaims(subject, ttl, TypeRefresh)
}

func newClaims(subject string, ttl time.Duration, tokenType string) Claims {
	now := time.Now()
	return Claims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
}

func (c *Codec) Encode(claims Claims) (string, error) {
	token := jwt.NewWithClaims(c.method, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry of tokenString and returns its
// claims. Any failure (malformed token, wrong signing method, bad
// signature, expired token) is reported as an error; callers normalize it
// to their own invalid-token signal.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != c.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("token is not valid")
	}

	return claims, nil
}
