package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"khata/internal/domain"
	"khata/internal/port"
)

const purchaseColumns = `id, tenant_id, date, counterparty, items, cgst, sgst, igst,
	sub_total, total, paid_amount, status, notes, created_by, created_at, updated_at`

var purchaseSearchColumns = []string{"counterparty->>'name'"}

type purchaseRepo struct {
	db *sqlx.DB
}

// NewPurchaseRepo creates a new PostgreSQL-backed PurchaseRepository.
func NewPurchaseRepo(db *sqlx.DB) port.PurchaseRepository {
	return &purchaseRepo{db: db}
}

func (r *purchaseRepo) Create(ctx context.Context, p *domain.Purchase) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `INSERT INTO purchases (` + purchaseColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8,
		$9, $10, $11, $12, $13, $14, $15, $16
	)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.TenantID, p.Date, p.Counterparty, p.Items, p.CGST, p.SGST, p.IGST,
		p.SubTotal, p.Total, p.PaidAmount, p.Status, p.Notes, p.CreatedBy, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return translateError("purchaseRepo.Create", err)
	}
	return nil
}

func (r *purchaseRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Purchase, error) {
	var p domain.Purchase
	err := r.db.GetContext(ctx, &p,
		"SELECT "+purchaseColumns+" FROM purchases WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("purchaseRepo.GetByID: %w", err)
	}
	return &p, nil
}

func (r *purchaseRepo) List(ctx context.Context, tenantID uuid.UUID, filter domain.LedgerFilter) ([]domain.Purchase, int, error) {
	whereClause, args := buildLedgerWhere(tenantID, filter, purchaseSearchColumns...)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM purchases "+whereClause, args...); err != nil {
		return nil, 0, fmt.Errorf("purchaseRepo.List count: %w", err)
	}

	offset, limit := pageBounds(filter)
	query := fmt.Sprintf("SELECT %s FROM purchases %s ORDER BY date DESC, created_at DESC OFFSET %d LIMIT %d",
		purchaseColumns, whereClause, offset, limit)

	var purchases []domain.Purchase
	if err := r.db.SelectContext(ctx, &purchases, query, args...); err != nil {
		return nil, 0, fmt.Errorf("purchaseRepo.List: %w", err)
	}
	return purchases, total, nil
}

func (r *purchaseRepo) UpdatePayment(ctx context.Context, tenantID, id uuid.UUID, paid float64, status domain.PaymentStatus) (*domain.Purchase, error) {
	var p domain.Purchase
	err := r.db.GetContext(ctx, &p,
		`UPDATE purchases SET paid_amount = $1, status = $2, updated_at = NOW()
		WHERE id = $3 AND tenant_id = $4
		RETURNING `+purchaseColumns, paid, status, id, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPurchaseNotFound
		}
		return nil, translateError("purchaseRepo.UpdatePayment", err)
	}
	return &p, nil
}

func (r *purchaseRepo) Stream(ctx context.Context, tenantID uuid.UUID, filter domain.LedgerFilter) iter.Seq2[domain.Purchase, error] {
	whereClause, args := buildLedgerWhere(tenantID, filter, purchaseSearchColumns...)
	query := "SELECT " + purchaseColumns + " FROM purchases " + whereClause + " ORDER BY date DESC, created_at DESC"
	return streamRows[domain.Purchase](ctx, r.db, "purchaseRepo.Stream", query, args)
}
