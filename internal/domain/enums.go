package domain

// PaymentStatus is derived from a document's total and paid amount.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// ParsePaymentStatus returns the status for s and whether s was recognised.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid:
		return PaymentStatus(s), true
	}
	return "", false
}

// DocumentKind distinguishes the two ledger document families.
type DocumentKind string

const (
	DocumentKindInvoice  DocumentKind = "invoice"
	DocumentKindPurchase DocumentKind = "purchase"
)

// SupplyType is the GST jurisdiction classification of a supply.
type SupplyType string

const (
	SupplyIntraState SupplyType = "intra"
	SupplyInterState SupplyType = "inter"
)

// UserRole defines the role of the acting user within a tenant.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// DefaultSeries is used when an invoice request names no series.
const DefaultSeries = "MAIN"

// WalkInCustomerName is the counterparty name for invoices without a customer.
const WalkInCustomerName = "Walk-in"
