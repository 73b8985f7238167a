package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"khata/internal/service"
)

// TenantHandler handles tenant profile endpoints.
type TenantHandler struct {
	tenantService service.TenantService
}

// NewTenantHandler creates a new TenantHandler.
func NewTenantHandler(tenantService service.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// GetProfile handles GET /api/v1/tenant/profile
// @Summary Get tenant profile
// @Description Get the acting tenant's company profile, creating it with defaults on first use
// @Tags tenant
// @Produce json
// @Success 200 {object} Response{data=domain.Tenant} "Tenant profile"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /tenant/profile [get]
func (h *TenantHandler) GetProfile(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	tenant, err := h.tenantService.GetProfile(c.Request.Context(), actor)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tenant)
}

// UpdateProfile handles PUT /api/v1/tenant/profile
// @Summary Update tenant profile
// @Description Update the company name, GSTIN, state code or address of the acting tenant
// @Tags tenant
// @Accept json
// @Produce json
// @Param request body service.UpdateTenantInput true "Fields to update"
// @Success 200 {object} Response{data=domain.Tenant} "Tenant updated"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Forbidden - admin only"
// @Security BearerAuth
// @Router /tenant/profile [put]
func (h *TenantHandler) UpdateProfile(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	var input service.UpdateTenantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tenant, err := h.tenantService.UpdateProfile(c.Request.Context(), actor, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tenant)
}
