package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"playnext/internal/logging"
	"playnext/internal/microservices/http-api/models"
	"playnext/internal/microservices/http-api/service"
)

// Context keys set by AuthMiddleware.
const (
	KeyUserID   = "userID"
	KeyUsername = "username"
	KeyRole     = "role"
	KeyUser     = "user"
)

// AuthMiddleware is a Gin middleware for JWT authentication of API requests.
// It validates the bearer token, loads the account it was issued for and
// puts the user on the gin context.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Not authenticated")
			return
		}

		// "Bearer <token>", scheme is case-insensitive
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			unauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := authService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			unauthorized(c, err.Error())
			return
		}

		user, err := authService.ResolveUser(c.Request.Context(), claims)
		if err != nil {
			if errors.Is(err, service.ErrInvalidToken) {
				unauthorized(c, err.Error())
				return
			}
			logging.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to resolve token subject")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set(KeyUser, user)
		c.Set(KeyUserID, user.ID)
		c.Set(KeyUsername, user.Username)
		c.Set(KeyRole, user.Role())

		c.Next()
	}
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// CurrentUser returns the user set by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(KeyUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// RequireRole checks if the user has the specified role
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(KeyRole)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": service.ErrForbidden.Error()})
			return
		}
		if userRole, ok := role.(string); !ok || userRole != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": service.ErrForbidden.Error()})
			return
		}
		c.Next()
	}
}

// RequireAdmin is a convenience function for requiring admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}
