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

const invoiceColumns = `id, tenant_id, document_number, series, fiscal_year, date, customer_id,
	counterparty, items, cgst, sgst, igst, sub_total, total, paid_amount, status, notes,
	created_by, created_at, updated_at`

var invoiceSearchColumns = []string{"document_number", "counterparty->>'name'"}

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	query := `INSERT INTO invoices (` + invoiceColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7,
		$8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
		$18, $19, $20
	)`

	_, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.TenantID, inv.DocumentNumber, inv.Series, inv.FiscalYear, inv.Date, inv.CustomerID,
		inv.Counterparty, inv.Items, inv.CGST, inv.SGST, inv.IGST, inv.SubTotal, inv.Total, inv.PaidAmount, inv.Status, inv.Notes,
		inv.CreatedBy, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		return translateError("invoiceRepo.Create", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv,
		"SELECT "+invoiceColumns+" FROM invoices WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) List(ctx context.Context, tenantID uuid.UUID, filter domain.LedgerFilter) ([]domain.Invoice, int, error) {
	whereClause, args := buildLedgerWhere(tenantID, filter, invoiceSearchColumns...)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices "+whereClause, args...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	offset, limit := pageBounds(filter)
	query := fmt.Sprintf("SELECT %s FROM invoices %s ORDER BY date DESC, created_at DESC OFFSET %d LIMIT %d",
		invoiceColumns, whereClause, offset, limit)

	var invoices []domain.Invoice
	if err := r.db.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) UpdatePayment(ctx context.Context, tenantID, id uuid.UUID, paid float64, status domain.PaymentStatus) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv,
		`UPDATE invoices SET paid_amount = $1, status = $2, updated_at = NOW()
		WHERE id = $3 AND tenant_id = $4
		RETURNING `+invoiceColumns, paid, status, id, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, translateError("invoiceRepo.UpdatePayment", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) Stream(ctx context.Context, tenantID uuid.UUID, filter domain.LedgerFilter) iter.Seq2[domain.Invoice, error] {
	whereClause, args := buildLedgerWhere(tenantID, filter, invoiceSearchColumns...)
	query := "SELECT " + invoiceColumns + " FROM invoices " + whereClause + " ORDER BY date DESC, created_at DESC"
	return streamRows[domain.Invoice](ctx, r.db, "invoiceRepo.Stream", query, args)
}

func (r *invoiceRepo) Count(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM invoices WHERE tenant_id = $1", tenantID); err != nil {
		return 0, fmt.Errorf("invoiceRepo.Count: %w", err)
	}
	return n, nil
}
