package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
	"khata/internal/middleware"
	"khata/mocks"
)

func TestTenantGuard_MissingTenant(t *testing.T) {
	r := gin.New()
	r.Use(middleware.TenantGuard())
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTenantProfile_StoresEnsuredTenant(t *testing.T) {
	verifier := new(mocks.MockTokenVerifier)
	claims := testClaims()
	verifier.On("Verify", "tok").Return(claims, nil)

	tenants := new(mocks.MockTenantService)
	tenant := &domain.Tenant{ID: claims.TenantID, Name: "Sharma Stores", GSTIN: "27AAAAA0000A1Z5"}
	tenants.On("EnsureProfile", mock.Anything, claims.Actor()).Return(tenant, nil)

	r := gin.New()
	r.Use(middleware.AuthMiddleware(verifier), middleware.TenantGuard(), middleware.TenantProfile(tenants))
	r.GET("/test", func(c *gin.Context) {
		got, err := middleware.GetTenant(c)
		if err != nil {
			c.Status(http.StatusTeapot)
			return
		}
		c.String(http.StatusOK, got.GSTIN)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "27AAAAA0000A1Z5", w.Body.String())
	tenants.AssertExpectations(t)
}

func TestTenantProfile_EnsureFails(t *testing.T) {
	verifier := new(mocks.MockTokenVerifier)
	claims := testClaims()
	verifier.On("Verify", "tok").Return(claims, nil)

	tenants := new(mocks.MockTenantService)
	tenants.On("EnsureProfile", mock.Anything, claims.Actor()).Return(nil, errors.New("db down"))

	r := gin.New()
	r.Use(middleware.AuthMiddleware(verifier), middleware.TenantProfile(tenants))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
