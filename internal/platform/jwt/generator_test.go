package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_GenerateToken(t *testing.T) {
	t.Run("generates a parseable HS256 token with expected claims", func(t *testing.T) {
		gen := NewGenerator("test-secret", time.Hour)

		signed, err := gen.GenerateToken(42, "user@example.com")
		require.NoError(t, err, "failed to generate token")
		require.NotEmpty(t, signed, "token is empty")

		parsed, err := jwt.Parse(signed, func(tok *jwt.Token) (interface{}, error) {
			if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte("test-secret"), nil
		})
		require.NoError(t, err, "failed to parse token")
		require.True(t, parsed.Valid, "token should be valid")

		claims, ok := parsed.Claims.(jwt.MapClaims)
		require.True(t, ok, "claims should be MapClaims")
		assert.Equal(t, float64(42), claims["sub"], "sub claim does not match")
		assert.Equal(t, "user@example.com", claims["email"], "email claim does not match")
	})

	t.Run("rejects verification with the wrong secret", func(t *testing.T) {
		gen := NewGenerator("right-secret", time.Hour)

		signed, err := gen.GenerateToken(1, "user@example.com")
		require.NoError(t, err, "failed to generate token")

		_, err = jwt.Parse(signed, func(tok *jwt.Token) (interface{}, error) {
			return []byte("wrong-secret"), nil
		})
		assert.Error(t, err, "parsing with the wrong secret should fail")
	})
}
