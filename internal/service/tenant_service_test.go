package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"khata/internal/domain"
	"khata/internal/service"
	"khata/mocks"
)

func TestTenantService_EnsureProfile_UsesActorDefaults(t *testing.T) {
	repo := new(mocks.MockTenantRepo)
	svc := service.NewTenantService(repo, "My Company")
	actor := testActor()
	actor.GSTIN = " 27aaaaa0000a1z5 "

	repo.On("Ensure", mock.Anything, mock.MatchedBy(func(t *domain.Tenant) bool {
		return t.ID == actor.TenantID && t.Name == "Sharma Stores" && t.GSTIN == "27AAAAA0000A1Z5" && t.StateCode == "27"
	})).Return(&domain.Tenant{ID: actor.TenantID, Name: "Sharma Stores"}, nil)

	tenant, err := svc.EnsureProfile(context.Background(), actor)

	require.NoError(t, err)
	assert.Equal(t, actor.TenantID, tenant.ID)
	repo.AssertExpectations(t)
}

func TestTenantService_EnsureProfile_FallsBackToDefaultName(t *testing.T) {
	repo := new(mocks.MockTenantRepo)
	svc := service.NewTenantService(repo, "My Company")
	actor := testActor()
	actor.DisplayName = ""

	repo.On("Ensure", mock.Anything, mock.MatchedBy(func(t *domain.Tenant) bool {
		return t.Name == "My Company"
	})).Return(&domain.Tenant{ID: actor.TenantID, Name: "My Company"}, nil)

	tenant, err := svc.EnsureProfile(context.Background(), actor)

	require.NoError(t, err)
	assert.Equal(t, "My Company", tenant.Name)
}

func TestTenantService_UpdateProfile_PartialUpdate(t *testing.T) {
	repo := new(mocks.MockTenantRepo)
	svc := service.NewTenantService(repo, "My Company")
	actor := testActor()

	existing := &domain.Tenant{ID: actor.TenantID, Name: "Old Name", GSTIN: "27AAAAA0000A1Z5", StateCode: "27"}
	repo.On("Ensure", mock.Anything, mock.Anything).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	tenant, err := svc.UpdateProfile(context.Background(), actor, service.UpdateTenantInput{
		Name:      ptr("New Name"),
		StateCode: ptr("29"),
	})

	require.NoError(t, err)
	assert.Equal(t, "New Name", tenant.Name)
	assert.Equal(t, "29", tenant.StateCode)
	assert.Equal(t, "27AAAAA0000A1Z5", tenant.GSTIN)
	repo.AssertExpectations(t)
}

func TestTenantService_UpdateProfile_InvalidGSTIN(t *testing.T) {
	repo := new(mocks.MockTenantRepo)
	svc := service.NewTenantService(repo, "My Company")

	_, err := svc.UpdateProfile(context.Background(), testActor(), service.UpdateTenantInput{GSTIN: ptr("27AAA")})

	assert.ErrorIs(t, err, domain.ErrValidation)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "gstin", verr.Field)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTenantService_UpdateProfile_RepoError(t *testing.T) {
	repo := new(mocks.MockTenantRepo)
	svc := service.NewTenantService(repo, "My Company")
	actor := testActor()

	repo.On("Ensure", mock.Anything, mock.Anything).Return(&domain.Tenant{ID: actor.TenantID}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(domain.ErrNotFound)

	tenant, err := svc.UpdateProfile(context.Background(), actor, service.UpdateTenantInput{Name: ptr("X")})

	assert.Nil(t, tenant)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
