package jwtmw

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextUserID is the Gin context key under which the authenticated
// principal's user ID is stored.
const ContextUserID = "userID"

// EnvKeyJWTSecret is the environment variable holding the signing secret.
const EnvKeyJWTSecret = "JWT_SECRET"

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := principalFromRequest(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid bearer token"})
			return
		}
		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// OptionalAuth binds the principal when a valid bearer token is present but
// lets anonymous requests through. Used by the invitation accept endpoint,
// which must distinguish "no principal" from "wrong principal" itself.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := principalFromRequest(c); ok {
			c.Set(ContextUserID, userID)
		}
		c.Next()
	}
}

// PrincipalID returns the bound user ID, or false when the request is
// anonymous.
func PrincipalID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// principalFromRequest parses and verifies the Authorization header.
func principalFromRequest(c *gin.Context) (uint, bool) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return 0, false
	}
	tokenStr := strings.TrimPrefix(auth, "Bearer ")

	secret := os.Getenv(EnvKeyJWTSecret)
	if secret == "" {
		// Server misconfiguration (JWT_SECRET not set)
		return 0, false
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		if sub, ok := claims["sub"].(float64); ok { // JWT numbers are decoded as float64
			return uint(sub), true
		}
	}
	return 0, false
}
