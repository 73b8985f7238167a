package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"khata/internal/auth"
	"khata/internal/domain"
)

const (
	ContextKeyTenantID = "tenant_id"
	ContextKeyUserID   = "user_id"
	ContextKeyEmail    = "email"
	ContextKeyRole     = "role"
	ContextKeyActor    = "actor"
)

// abort ends the request with the standard error envelope.
func abort(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": msg},
	})
}

// AuthMiddleware verifies the bearer token and stores the acting identity
// it carries in the Gin context.
func AuthMiddleware(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found || token == "" {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid authorization header")
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			return
		}

		c.Set(ContextKeyTenantID, claims.TenantID)
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyRole, string(claims.Role))
		c.Set(ContextKeyActor, claims.Actor())
		c.Next()
	}
}

// RequireRole rejects callers whose token role is not one of roles.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := domain.UserRole(c.GetString(ContextKeyRole))
		if role == "" {
			abort(c, http.StatusForbidden, "FORBIDDEN", "role not found in context")
			return
		}
		if !slices.Contains(roles, role) {
			abort(c, http.StatusForbidden, "FORBIDDEN", "insufficient permissions")
			return
		}
		c.Next()
	}
}

// GetTenantID extracts the tenant ID from the Gin context.
func GetTenantID(c *gin.Context) (uuid.UUID, error) {
	id, ok := c.Get(ContextKeyTenantID)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	tenantID, ok := id.(uuid.UUID)
	if !ok || tenantID == uuid.Nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return tenantID, nil
}

// GetActor extracts the acting identity from the Gin context.
func GetActor(c *gin.Context) (domain.Actor, error) {
	val, exists := c.Get(ContextKeyActor)
	if !exists {
		return domain.Actor{}, domain.ErrUnauthorized
	}
	actor, ok := val.(domain.Actor)
	if !ok {
		return domain.Actor{}, domain.ErrUnauthorized
	}
	return actor, nil
}
