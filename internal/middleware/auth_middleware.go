package middleware

import (
	"net/http"
	"strings"

	"github.com/eventease/eventease/internal/helpers"
	"github.com/eventease/eventease/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TokenVerifier interface {
	VerifyToken(token string) (services.TokenClaims, error)
}

// JWTAuthMiddleware verifies the bearer token and stores the verified
// identity in the request context. The role always comes from the claim,
// never from client-supplied fields.
func JWTAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Missing or malformed authorization header.")
			c.Abort()
			return
		}

		claims, err := verifier.VerifyToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token.")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireRoles gates a route group to the listed roles. Ownership checks
// (organizer vs. caller) stay in the services, which see both IDs.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		helpers.RespondWithError(c, http.StatusForbidden, "Insufficient permissions.")
		c.Abort()
	}
}

func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func CurrentRole(c *gin.Context) string {
	return c.GetString("role")
}
