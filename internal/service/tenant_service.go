package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"khata/internal/domain"
	"khata/internal/logger"
	"khata/internal/port"
)

// UpdateTenantInput is the DTO for updating tenant settings. Nil fields are
// left unchanged.
type UpdateTenantInput struct {
	Name      *string         `json:"name" validate:"omitempty,min=1,max=255"`
	GSTIN     *string         `json:"gstin" validate:"omitempty,len=15,alphanum"`
	StateCode *string         `json:"state_code" validate:"omitempty,max=8"`
	Address   *domain.Address `json:"address"`
}

// TenantService manages the tenant profile that carries the seller's tax
// identity.
type TenantService interface {
	// EnsureProfile creates the acting tenant's profile from the actor's
	// defaults if it does not exist yet and returns the stored profile.
	EnsureProfile(ctx context.Context, actor domain.Actor) (*domain.Tenant, error)
	GetProfile(ctx context.Context, actor domain.Actor) (*domain.Tenant, error)
	UpdateProfile(ctx context.Context, actor domain.Actor, input UpdateTenantInput) (*domain.Tenant, error)
}

type tenantService struct {
	repo               port.TenantRepository
	defaultCompanyName string
	log                zerolog.Logger
}

// NewTenantService creates a new TenantService implementation.
func NewTenantService(repo port.TenantRepository, defaultCompanyName string) TenantService {
	return &tenantService{
		repo:               repo,
		defaultCompanyName: defaultCompanyName,
		log:                logger.WithComponent("service.tenant"),
	}
}

func (s *tenantService) EnsureProfile(ctx context.Context, actor domain.Actor) (*domain.Tenant, error) {
	name := strings.TrimSpace(actor.DisplayName)
	if name == "" {
		name = s.defaultCompanyName
	}
	tenant, err := s.repo.Ensure(ctx, &domain.Tenant{
		ID:        actor.TenantID,
		Name:      name,
		GSTIN:     strings.ToUpper(strings.TrimSpace(actor.GSTIN)),
		StateCode: strings.ToUpper(strings.TrimSpace(actor.HomeStateCode)),
	})
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) GetProfile(ctx context.Context, actor domain.Actor) (*domain.Tenant, error) {
	return s.EnsureProfile(ctx, actor)
}

func (s *tenantService) UpdateProfile(ctx context.Context, actor domain.Actor, input UpdateTenantInput) (*domain.Tenant, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	tenant, err := s.EnsureProfile(ctx, actor)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		tenant.Name = strings.TrimSpace(*input.Name)
	}
	if input.GSTIN != nil {
		tenant.GSTIN = strings.ToUpper(strings.TrimSpace(*input.GSTIN))
	}
	if input.StateCode != nil {
		tenant.StateCode = strings.ToUpper(strings.TrimSpace(*input.StateCode))
	}
	if input.Address != nil {
		tenant.Address = *input.Address
	}

	if err := s.repo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	s.log.Debug().Str("tenant_id", tenant.ID.String()).Msg("tenant profile updated")
	return tenant, nil
}
