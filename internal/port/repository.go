package port

import (
	"context"
	"iter"

	"github.com/google/uuid"

	"khata/internal/domain"
)

// SequenceStore is the keyed counter behind invoice numbering. Increment must
// be a single atomic increment-and-fetch: concurrent callers for the same key
// never observe the same value. The first increment of a key returns 1.
type SequenceStore interface {
	Increment(ctx context.Context, key domain.SequenceKey) (int64, error)
	Current(ctx context.Context, key domain.SequenceKey) (int64, error)
}

// TenantRepository defines the contract for tenant profile persistence.
type TenantRepository interface {
	// Ensure inserts tenant if no row with its ID exists and returns the
	// stored profile either way.
	Ensure(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	Update(ctx context.Context, tenant *domain.Tenant) error
}

// ProductRepository reads the product master. The ledger only writes the
// opening quantity.
type ProductRepository interface {
	GetByID(ctx context.Context, tenantID, productID uuid.UUID) (*domain.Product, error)
	GetByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]domain.Product, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Product, error)
	SetOpeningQuantity(ctx context.Context, tenantID, productID uuid.UUID, qty int64) (*domain.Product, error)
	Count(ctx context.Context, tenantID uuid.UUID) (int, error)
}

// CustomerRepository reads customer records.
type CustomerRepository interface {
	GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*domain.Customer, error)
	Count(ctx context.Context, tenantID uuid.UUID) (int, error)
}

// InvoiceRepository defines the contract for invoice persistence.
// All methods are scoped by tenantID.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, tenantID uuid.UUID, filter domain.LedgerFilter) ([]domain.Invoice, int, error)
	UpdatePayment(ctx context.Context, tenantID, id uuid.UUID, paid float64, status domain.PaymentStatus) (*domain.Invoice, error)
	// Stream yields matching invoices newest first from an open cursor. It
	// stops at the first error and releases the cursor when the consumer
	// breaks out early.
	Stream(ctx context.Context, tenantID uuid.UUID, filter domain.LedgerFilter) iter.Seq2[domain.Invoice, error]
	Count(ctx context.Context, tenantID uuid.UUID) (int, error)
}

// PurchaseRepository defines the contract for purchase persistence.
type PurchaseRepository interface {
	Create(ctx context.Context, p *domain.Purchase) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Purchase, error)
	List(ctx context.Context, tenantID uuid.UUID, filter domain.LedgerFilter) ([]domain.Purchase, int, error)
	UpdatePayment(ctx context.Context, tenantID, id uuid.UUID, paid float64, status domain.PaymentStatus) (*domain.Purchase, error)
	Stream(ctx context.Context, tenantID uuid.UUID, filter domain.LedgerFilter) iter.Seq2[domain.Purchase, error]
}
