package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiutodesk/desk/internal/errors"
)

func signToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestInspect(t *testing.T) {
	issued := time.Now().Add(-time.Hour).Truncate(time.Second)
	expires := time.Now().Add(time.Hour).Truncate(time.Second)

	token := signToken(t, tokenClaims{
		Email: "maria@empresa.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			Issuer:    "aiutodesk",
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})

	claims, err := Inspect(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "aiutodesk", claims.Issuer)
	assert.Equal(t, "maria@empresa.com", claims.Email)
	assert.True(t, claims.IssuedAt.Equal(issued))
	assert.True(t, claims.ExpiresAt.Equal(expires))
	assert.False(t, claims.Expired())
}

func TestInspect_ExpiredToken(t *testing.T) {
	token := signToken(t, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})

	claims, err := Inspect(token)
	require.NoError(t, err)
	assert.True(t, claims.Expired())
}

func TestInspect_NoExpiry(t *testing.T) {
	token := signToken(t, jwt.RegisteredClaims{Subject: "42"})

	claims, err := Inspect(token)
	require.NoError(t, err)
	assert.False(t, claims.Expired())
	assert.True(t, claims.ExpiresAt.IsZero())
}

func TestInspect_Malformed(t *testing.T) {
	for _, token := range []string{"", "not-a-jwt", "a.b", "a.b.c.d"} {
		_, err := Inspect(token)
		require.Error(t, err, "token %q", token)
		assert.Equal(t, errors.ErrCodeTokenMalformed, errors.Code(err))
	}
}
