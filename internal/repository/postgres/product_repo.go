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

const productColumns = `id, tenant_id, name, unit_price, gst_percent, unit, hsn,
	opening_quantity, created_at, updated_at`

type productRepo struct {
	db *sqlx.DB
}

// NewProductRepo creates a new PostgreSQL-backed ProductRepository.
func NewProductRepo(db *sqlx.DB) port.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) GetByID(ctx context.Context, tenantID, productID uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p,
		"SELECT "+productColumns+" FROM products WHERE id = $1 AND tenant_id = $2", productID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("productRepo.GetByID: %w", err)
	}
	return &p, nil
}

func (r *productRepo) GetByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	query, args, err := sqlx.In(
		"SELECT "+productColumns+" FROM products WHERE tenant_id = ? AND id IN (?) ORDER BY lower(name)",
		tenantID, ids)
	if err != nil {
		return nil, fmt.Errorf("productRepo.GetByIDs build: %w", err)
	}
	var products []domain.Product
	if err := r.db.SelectContext(ctx, &products, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("productRepo.GetByIDs: %w", err)
	}
	return products, nil
}

func (r *productRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.SelectContext(ctx, &products,
		"SELECT "+productColumns+" FROM products WHERE tenant_id = $1 ORDER BY lower(name)", tenantID)
	if err != nil {
		return nil, fmt.Errorf("productRepo.ListByTenant: %w", err)
	}
	return products, nil
}

func (r *productRepo) SetOpeningQuantity(ctx context.Context, tenantID, productID uuid.UUID, qty int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p,
		`UPDATE products SET opening_quantity = $1, updated_at = NOW()
		WHERE id = $2 AND tenant_id = $3
		RETURNING `+productColumns, qty, productID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("productRepo.SetOpeningQuantity: %w", err)
	}
	return &p, nil
}

func (r *productRepo) Count(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM products WHERE tenant_id = $1", tenantID); err != nil {
		return 0, fmt.Errorf("productRepo.Count: %w", err)
	}
	return n, nil
}
