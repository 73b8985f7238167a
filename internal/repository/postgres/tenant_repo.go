package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"khata/internal/domain"
	"khata/internal/port"
)

const tenantColumns = `id, name, gstin, state_code, address, created_at, updated_at`

type tenantRepo struct {
	db *sqlx.DB
}

// NewTenantRepo creates a PostgreSQL-backed TenantRepository.
func NewTenantRepo(db *sqlx.DB) port.TenantRepository {
	return &tenantRepo{db: db}
}

// Ensure inserts the profile unless one already exists and returns the stored
// row either way. The no-op update makes RETURNING yield the existing row.
func (r *tenantRepo) Ensure(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	var stored domain.Tenant
	err := r.db.GetContext(ctx, &stored, `
		INSERT INTO tenants (id, name, gstin, state_code, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET id = tenants.id
		RETURNING `+tenantColumns,
		tenant.ID, tenant.Name, tenant.GSTIN, tenant.StateCode, tenant.Address)
	if err != nil {
		return nil, translateError("tenantRepo.Ensure", err)
	}
	return &stored, nil
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.db.GetContext(ctx, &tenant, `SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("tenantRepo.GetByID: %w", err)
	}
	return &tenant, nil
}

func (r *tenantRepo) Update(ctx context.Context, tenant *domain.Tenant) error {
	err := r.db.QueryRowxContext(ctx, `
		UPDATE tenants
		SET name = $2, gstin = $3, state_code = $4, address = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		tenant.ID, tenant.Name, tenant.GSTIN, tenant.StateCode, tenant.Address).Scan(&tenant.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return translateError("tenantRepo.Update", err)
	}
	return nil
}
