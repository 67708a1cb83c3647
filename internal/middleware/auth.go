package middleware

import (
	"errors"
	"net/http"
	"strings"

	"reclamation/internal/pkg/jwt"
	"reclamation/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// JWTAuth validates the bearer token and stores user_id and role on the context.
func JWTAuth(tokens *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			return
		}

		tokenStr := strings.TrimSpace(parts[1])
		if tokenStr == "" {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Empty token")
			return
		}

		claims, err := tokens.ValidateToken(tokenStr)
		if errors.Is(err, jwt.ErrExpiredToken) {
			response.Abort(c, http.StatusUnauthorized, "TOKEN_EXPIRED", "Token has expired")
			return
		}
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// OptionalJWTAuth behaves like JWTAuth when an Authorization header is sent
// and lets anonymous requests through untouched.
func OptionalJWTAuth(tokens *jwt.Service) gin.HandlerFunc {
	strict := JWTAuth(tokens)
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		strict(c)
	}
}

// UserID returns the authenticated user id, or 0 outside JWTAuth.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(CtxUserID)
}

// Role returns the authenticated role, or "" outside JWTAuth.
func Role(c *gin.Context) string {
	return c.GetString(CtxRole)
}
