package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bekhruzRakhmonov/educative-platform/internal/models"
	"github.com/bekhruzRakhmonov/educative-platform/internal/services"
)

// JWTAuthMiddleware authenticates requests with locally issued bearer tokens.
// The user is reloaded on every request so approval changes apply without a
// fresh login.
type JWTAuthMiddleware struct {
	authService services.AuthService
}

func NewJWTAuthMiddleware(authService services.AuthService) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{authService: authService}
}

// AuthMiddleware returns a Gin middleware enforcing a valid access token.
func (m *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "authorization header missing"})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "invalid authorization header format"})
			c.Abort()
			return
		}

		user, err := m.authService.VerifyAccessToken(c.Request.Context(), tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Set("user_role", user.Role)
		c.Set("user_email", user.Email)

		c.Next()
	}
}

// RequireStaffMiddleware restricts a route to staff accounts.
func (m *JWTAuthMiddleware) RequireStaffMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil || !user.IsStaff {
			c.JSON(http.StatusForbidden, ErrorResponse{Message: "staff access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRoleMiddleware checks if the user has one of the required roles.
// Staff accounts pass every role gate.
func (m *JWTAuthMiddleware) RequireRoleMiddleware(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			c.JSON(http.StatusForbidden, ErrorResponse{Message: "user not found in context"})
			c.Abort()
			return
		}

		if user.IsStaff {
			c.Next()
			return
		}

		for _, role := range requiredRoles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: fmt.Sprintf("insufficient permissions, required role: %v", requiredRoles),
		})
		c.Abort()
	}
}

// GetUserFromContext extracts the authenticated user from the Gin context.
func GetUserFromContext(c *gin.Context) (*models.User, error) {
	user, exists := c.Get("user")
	if !exists {
		return nil, fmt.Errorf("user not found in context")
	}

	userModel, ok := user.(*models.User)
	if !ok {
		return nil, fmt.Errorf("invalid user type in context")
	}

	return userModel, nil
}

// GetUserIDFromContext extracts the authenticated user's ID from the Gin
// context.
func GetUserIDFromContext(c *gin.Context) (string, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", fmt.Errorf("user ID not found in context")
	}

	id, ok := userID.(string)
	if !ok {
		return "", fmt.Errorf("invalid user ID type in context")
	}

	return id, nil
}
