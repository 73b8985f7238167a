package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
	"khata/internal/handler"
	"khata/internal/service"
	"khata/mocks"
)

func TestTenantHandler_GetProfile(t *testing.T) {
	mockSvc := new(mocks.MockTenantService)
	h := handler.NewTenantHandler(mockSvc)
	actor := testActor()

	mockSvc.On("GetProfile", mock.Anything, actor).
		Return(&domain.Tenant{ID: actor.TenantID, Name: "Sharma Stores", StateCode: "27"}, nil)

	c, w := newTestContext(http.MethodGet, "/api/v1/tenant/profile", nil)
	setAuthContext(c, actor)

	h.GetProfile(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, "Sharma Stores", data["name"])
	mockSvc.AssertExpectations(t)
}

func TestTenantHandler_UpdateProfile(t *testing.T) {
	mockSvc := new(mocks.MockTenantService)
	h := handler.NewTenantHandler(mockSvc)
	actor := testActor()
	actor.Role = domain.RoleAdmin

	mockSvc.On("UpdateProfile", mock.Anything, actor, mock.MatchedBy(func(in service.UpdateTenantInput) bool {
		return in.GSTIN != nil && *in.GSTIN == "27AAAAA0000A1Z5" && in.Name == nil
	})).Return(&domain.Tenant{ID: actor.TenantID, GSTIN: "27AAAAA0000A1Z5"}, nil)

	c, w := newTestContext(http.MethodPut, "/api/v1/tenant/profile", []byte(`{"gstin":"27AAAAA0000A1Z5"}`))
	setAuthContext(c, actor)

	h.UpdateProfile(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestTenantHandler_UpdateProfile_ValidationError(t *testing.T) {
	mockSvc := new(mocks.MockTenantService)
	h := handler.NewTenantHandler(mockSvc)
	actor := testActor()

	mockSvc.On("UpdateProfile", mock.Anything, actor, mock.Anything).
		Return(nil, domain.NewValidationError("gstin", "must be 15 characters"))

	c, w := newTestContext(http.MethodPut, "/api/v1/tenant/profile", []byte(`{"gstin":"27AAA"}`))
	setAuthContext(c, actor)

	h.UpdateProfile(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
