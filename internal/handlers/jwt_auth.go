package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/academic-records-service/internal/models"
	"github.com/SAP-F-2025/academic-records-service/internal/security"
)

const (
	contextUserIDKey   = "user_id"
	contextUsernameKey = "username"
	contextRolesKey    = "roles"
)

// JWTAuthMiddleware authenticates requests with the bearer access tokens
// issued by the account service.
type JWTAuthMiddleware struct {
	tokens *security.TokenManager
}

func NewJWTAuthMiddleware(tokens *security.TokenManager) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{tokens: tokens}
}

// AuthMiddleware validates the Authorization header and stores the caller's
// identity in the request context.
func (m *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authorization header is required",
			})
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authorization header must be a bearer token",
			})
			return
		}

		claims, err := m.tokens.ParseAccess(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid or expired token",
			})
			return
		}

		roles := make([]models.UserRole, 0, len(claims.Roles))
		for _, role := range claims.Roles {
			roles = append(roles, models.UserRole(role))
		}

		c.Set(contextUserIDKey, claims.UserID)
		c.Set(contextUsernameKey, claims.Username)
		c.Set(contextRolesKey, roles)

		c.Next()
	}
}

// RequireRoleMiddleware allows only callers carrying one of the given roles.
// Admins pass every role gate.
func (m *JWTAuthMiddleware) RequireRoleMiddleware(required ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles, ok := GetRoles(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "User not authenticated",
			})
			return
		}

		for _, role := range roles {
			if role == models.RoleAdmin {
				c.Next()
				return
			}
			for _, want := range required {
				if role == want {
					c.Next()
					return
				}
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Message: "Insufficient permissions",
		})
	}
}

// ===== CONTEXT GETTERS =====

// GetUserID returns the authenticated user's ID from the request context
func GetUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(contextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// GetUsername returns the authenticated user's username from the request context
func GetUsername(c *gin.Context) (string, bool) {
	value, exists := c.Get(contextUsernameKey)
	if !exists {
		return "", false
	}
	username, ok := value.(string)
	return username, ok
}

// GetRoles returns the authenticated user's roles from the request context
func GetRoles(c *gin.Context) ([]models.UserRole, bool) {
	value, exists := c.Get(contextRolesKey)
	if !exists {
		return nil, false
	}
	roles, ok := value.([]models.UserRole)
	return roles, ok
}

// HasRole reports whether the caller carries the given role
func HasRole(c *gin.Context, role models.UserRole) bool {
	roles, ok := GetRoles(c)
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
