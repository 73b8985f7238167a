package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"khata/internal/domain"
	"khata/internal/logger"
)

// ContextKeyTenant holds the ensured *domain.Tenant profile.
const ContextKeyTenant = "tenant"

// TenantProfileEnsurer creates the tenant profile on first use.
type TenantProfileEnsurer interface {
	EnsureProfile(ctx context.Context, actor domain.Actor) (*domain.Tenant, error)
}

// TenantGuard rejects requests that reached it without a tenant. It runs
// after AuthMiddleware.
func TenantGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := GetTenantID(c); err != nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "tenant context required")
			return
		}
		c.Next()
	}
}

// TenantProfile ensures the acting tenant's profile exists before any ledger
// call that needs its tax identity, and stores it in the context.
func TenantProfile(ensurer TenantProfileEnsurer) gin.HandlerFunc {
	log := logger.WithComponent("middleware.tenant")
	return func(c *gin.Context) {
		actor, err := GetActor(c)
		if err != nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "tenant context required")
			return
		}
		tenant, err := ensurer.EnsureProfile(c.Request.Context(), actor)
		if err != nil {
			log.Error().Err(err).Str("tenant_id", actor.TenantID.String()).Msg("ensuring tenant profile")
			abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "tenant profile unavailable")
			return
		}
		c.Set(ContextKeyTenant, tenant)
		c.Next()
	}
}

// GetTenant extracts the ensured tenant profile from the Gin context.
func GetTenant(c *gin.Context) (*domain.Tenant, error) {
	val, exists := c.Get(ContextKeyTenant)
	if !exists {
		return nil, domain.ErrUnauthorized
	}
	tenant, ok := val.(*domain.Tenant)
	if !ok || tenant == nil {
		return nil, domain.ErrUnauthorized
	}
	return tenant, nil
}
