// Package identity decodes access tokens for display. Tokens are inspected
// without signature verification: the backend is the authority, this side
// only surfaces the claims it embedded.
package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aiutodesk/desk/internal/errors"
)

// Claims is the subset of token claims shown to the user.
type Claims struct {
	Subject   string
	Issuer    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token's expiry has passed. A token without an
// expiry never expires.
func (c Claims) Expired() bool {
	return !c.ExpiresAt.IsZero() && time.Now().After(c.ExpiresAt)
}

type tokenClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Inspect decodes token without verifying its signature.
func Inspect(token string) (*Claims, error) {
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTokenMalformed, "access token is not a valid JWT", err).
			WithSuggestion("Run 'desk auth login' to obtain a fresh token")
	}

	out := &Claims{
		Subject: claims.Subject,
		Issuer:  claims.Issuer,
		Email:   claims.Email,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
