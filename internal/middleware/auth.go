package middleware

import (
	"context"
	"strings"

	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/security"
	"clinic-booking-server/internal/utils"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// TokenValidator parses a session token into its claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (*utils.Claims, error)
}

// AccountStatusChecker reports whether a token's account may still be used.
type AccountStatusChecker interface {
	IsAccountActive(ctx context.Context, accountID uint) (bool, error)
}

// AuthMiddleware creates a middleware for JWT authentication. Tokens of
// deleted accounts are rejected even before they expire.
func AuthMiddleware(tokens TokenValidator, accounts AccountStatusChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			utils.Unauthorized(c, "Invalid token: "+err.Error())
			c.Abort()
			return
		}

		principal := claims.Principal()
		active, err := accounts.IsAccountActive(c.Request.Context(), principal.AccountID)
		if err != nil {
			utils.InternalServerError(c, "Failed to verify account")
			c.Abort()
			return
		}
		if !active {
			utils.Unauthorized(c, "Account is no longer active")
			c.Abort()
			return
		}

		// Downstream handlers read the caller through GetPrincipal.
		c.Set(principalKey, principal)

		c.Next()
	}
}

// RoleAuthMiddleware creates a middleware for role-based authorization.
// It should be used *after* AuthMiddleware.
func RoleAuthMiddleware(allowedRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			utils.InternalServerError(c, "Principal not found in context. AuthMiddleware might be missing.")
			c.Abort()
			return
		}

		if !principal.HasRole(allowedRoles...) {
			utils.Forbidden(c, "You do not have permission to access this resource.")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetPrincipal returns the authenticated caller stored by AuthMiddleware.
func GetPrincipal(c *gin.Context) (security.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return security.Principal{}, false
	}
	principal, ok := value.(security.Principal)
	return principal, ok
}

// SetPrincipal stores principal on the request context.
func SetPrincipal(c *gin.Context, principal security.Principal) {
	c.Set(principalKey, principal)
}
