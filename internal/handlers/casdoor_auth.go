package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/tygart-labs/employee-portal-service/internal/config"
	"github.com/tygart-labs/employee-portal-service/internal/models"
	"github.com/tygart-labs/employee-portal-service/internal/services"
)

// CasdoorAuthMiddleware provides authentication using Casdoor SDK
type CasdoorAuthMiddleware struct {
	client *casdoorsdk.Client
	users  services.UserService
	config config.CasdoorConfig
}

// NewCasdoorAuthMiddleware creates a new Casdoor authentication middleware
func NewCasdoorAuthMiddleware(cfg config.CasdoorConfig, users services.UserService) *CasdoorAuthMiddleware {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Application,
		cfg.Organization,
	)

	return &CasdoorAuthMiddleware{
		client: client,
		users:  users,
		config: cfg,
	}
}

// AuthMiddleware returns a Gin middleware function for Casdoor authentication
func (cam *CasdoorAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Extract token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "authorization header missing",
			})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>" format
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "invalid authorization header format",
			})
			c.Abort()
			return
		}

		token := tokenParts[1]

		// Parse and validate the token using Casdoor SDK
		claims, err := cam.client.ParseJwtToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": fmt.Sprintf("invalid token: %v", err),
			})
			c.Abort()
			return
		}

		uid := claims.User.Id
		if uid == "" {
			uid = claims.User.Name
		}
		if uid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "invalid user ID in token",
			})
			c.Abort()
			return
		}

		email := claims.User.Email
		isAdmin := cam.resolveAdmin(c, claims, uid, email)

		role := string(models.RoleEmployee)
		if isAdmin {
			role = string(models.RoleAdmin)
		}

		// Set user information in context
		c.Set("user_id", uid)
		c.Set("user_email", email)
		c.Set("user_role", role)
		c.Set("is_admin", isAdmin)

		// Continue with the request
		c.Next()
	}
}

// resolveAdmin decides whether the caller holds the admin role. An
// admin token claim short-circuits without touching the mirror; any
// resolution error fails closed to non-admin.
func (cam *CasdoorAuthMiddleware) resolveAdmin(c *gin.Context, claims *casdoorsdk.Claims, uid, email string) bool {
	if claims.User.IsAdmin || strings.EqualFold(claims.User.Type, string(models.RoleAdmin)) {
		return true
	}

	isAdmin, err := cam.users.IsAdmin(c.Request.Context(), uid, email)
	if err != nil {
		return false
	}
	return isAdmin
}

// RequireAdminMiddleware rejects callers without the admin role.
func (cam *CasdoorAuthMiddleware) RequireAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get("is_admin")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "user role not found in context",
			})
			c.Abort()
			return
		}

		if admin, ok := isAdmin.(bool); !ok || !admin {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "insufficient permissions, admin role required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserIDFromContext extracts user ID from Gin context
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

// GetUserEmailFromContext extracts user email from Gin context
func GetUserEmailFromContext(c *gin.Context) (string, error) {
	email, exists := c.Get("user_email")
	if !exists {
		return "", fmt.Errorf("user email not found in context")
	}

	value, ok := email.(string)
	if !ok {
		return "", fmt.Errorf("invalid user email type in context")
	}

	return value, nil
}

// IsAdminFromContext reports whether the caller resolved to admin.
func IsAdminFromContext(c *gin.Context) bool {
	isAdmin, exists := c.Get("is_admin")
	if !exists {
		return false
	}
	admin, ok := isAdmin.(bool)
	return ok && admin
}

// callerFromContext assembles the caller principal the middleware
// resolved, including the admin bit, for services that gate on role.
func callerFromContext(c *gin.Context) services.Caller {
	uid, _ := GetUserIDFromContext(c)
	email, _ := GetUserEmailFromContext(c)
	return services.Caller{
		UID:   uid,
		Email: email,
		Admin: IsAdminFromContext(c),
	}
}
