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

type customerRepo struct {
	db *sqlx.DB
}

// NewCustomerRepo creates a new PostgreSQL-backed CustomerRepository.
func NewCustomerRepo(db *sqlx.DB) port.CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.GetContext(ctx, &c,
		`SELECT id, tenant_id, name, phone, gstin, state_code, address, created_at, updated_at
		FROM customers WHERE id = $1 AND tenant_id = $2`, customerID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("customerRepo.GetByID: %w", err)
	}
	return &c, nil
}

func (r *customerRepo) Count(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM customers WHERE tenant_id = $1", tenantID); err != nil {
		return 0, fmt.Errorf("customerRepo.Count: %w", err)
	}
	return n, nil
}
