package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tenant is the company that owns a ledger. Its GSTIN and state code drive
// tax classification of every document it issues or receives.
type Tenant struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	GSTIN     string    `db:"gstin" json:"gstin"`
	StateCode string    `db:"state_code" json:"state_code"`
	Address   Address   `db:"address" json:"address"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SellerInfo returns the tax identity used when the tenant issues or receives
// a document. fallbackState is the acting user's home state, used when the
// tenant profile carries no state code of its own.
func (t *Tenant) SellerInfo(fallbackState string) TaxParty {
	state := t.StateCode
	if state == "" {
		state = fallbackState
	}
	return TaxParty{GSTIN: t.GSTIN, StateCode: state}
}

// Actor is the identity supplied by the session collaborator on every call.
type Actor struct {
	TenantID      uuid.UUID
	UserID        uuid.UUID
	Role          UserRole
	HomeStateCode string
	GSTIN         string
	Email         string
	DisplayName   string
}

// TaxParty is the subset of a party's identity that determines GST jurisdiction.
type TaxParty struct {
	GSTIN     string
	StateCode string
}

// Address is a postal address stored as JSONB.
type Address struct {
	Line1   string `json:"line1,omitempty"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode,omitempty"`
}

func (a Address) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *Address) Scan(src any) error {
	return scanJSON(src, a)
}

// String renders the address on a single line.
func (a Address) String() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Line1, a.Line2, a.City, a.State, a.Pincode} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Product is a tenant's catalogue entry. The ledger only writes OpeningQuantity.
type Product struct {
	ID              uuid.UUID `db:"id" json:"id"`
	TenantID        uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name            string    `db:"name" json:"name"`
	UnitPrice       float64   `db:"unit_price" json:"unit_price"`
	GSTPercent      float64   `db:"gst_percent" json:"gst_percent"`
	Unit            string    `db:"unit" json:"unit"`
	HSN             string    `db:"hsn" json:"hsn"`
	OpeningQuantity int64     `db:"opening_quantity" json:"opening_quantity"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Customer is a counterparty record managed outside the ledger.
type Customer struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone"`
	GSTIN     string    `db:"gstin" json:"gstin"`
	StateCode string    `db:"state_code" json:"state_code"`
	Address   Address   `db:"address" json:"address"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Snapshot copies the customer's current identity into an immutable counterparty.
func (c *Customer) Snapshot() Counterparty {
	state := c.StateCode
	if state == "" {
		state = c.Address.State
	}
	return Counterparty{
		Name:      c.Name,
		Phone:     c.Phone,
		GSTIN:     c.GSTIN,
		StateCode: state,
		Address:   c.Address.String(),
	}
}

// Counterparty is the denormalized buyer or vendor identity stored on a document.
// It never changes after the document is created.
type Counterparty struct {
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	GSTIN     string `json:"gstin,omitempty"`
	StateCode string `json:"state_code,omitempty"`
	Address   string `json:"address,omitempty"`
}

// TaxParty returns the jurisdiction signals of the counterparty.
func (c Counterparty) TaxParty() TaxParty {
	return TaxParty{GSTIN: c.GSTIN, StateCode: c.StateCode}
}

func (c Counterparty) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *Counterparty) Scan(src any) error {
	return scanJSON(src, c)
}

// CounterpartyRef identifies the other party of a new document: either a
// known customer record or a manually entered identity.
type CounterpartyRef interface {
	isCounterpartyRef()
}

// KnownCounterparty references an existing customer record.
type KnownCounterparty struct {
	ID uuid.UUID
}

// ManualCounterparty is an identity typed in at document creation time.
type ManualCounterparty struct {
	Name      string
	Phone     string
	GSTIN     string
	StateCode string
	Address   string
}

func (KnownCounterparty) isCounterpartyRef()  {}
func (ManualCounterparty) isCounterpartyRef() {}

// LineItem is a snapshotted document line.
type LineItem struct {
	ProductID  *uuid.UUID `json:"product_id,omitempty"`
	Name       string     `json:"name"`
	Quantity   float64    `json:"qty"`
	Unit       string     `json:"unit,omitempty"`
	UnitPrice  float64    `json:"price"`
	GSTPercent float64    `json:"gst_percent"`
	HSN        string     `json:"hsn,omitempty"`
}

// Amount is the taxable value of the line.
func (l LineItem) Amount() float64 {
	return l.Quantity * l.UnitPrice
}

// LineItems is stored as a JSONB array.
type LineItems []LineItem

func (li LineItems) Value() (driver.Value, error) {
	if li == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(li)
}

func (li *LineItems) Scan(src any) error {
	return scanJSON(src, li)
}

// TaxBreakdown holds the GST components of a line or document.
type TaxBreakdown struct {
	CGST float64 `db:"cgst" json:"cgst"`
	SGST float64 `db:"sgst" json:"sgst"`
	IGST float64 `db:"igst" json:"igst"`
}

// Total is the sum of all components.
func (t TaxBreakdown) Total() float64 {
	return t.CGST + t.SGST + t.IGST
}

// Add returns the component-wise sum.
func (t TaxBreakdown) Add(o TaxBreakdown) TaxBreakdown {
	return TaxBreakdown{CGST: t.CGST + o.CGST, SGST: t.SGST + o.SGST, IGST: t.IGST + o.IGST}
}

// LedgerDocument is the shape shared by invoices and purchases. After creation
// only PaidAmount and Status change.
type LedgerDocument struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	TenantID     uuid.UUID     `db:"tenant_id" json:"tenant_id"`
	Date         time.Time     `db:"date" json:"date"`
	Counterparty Counterparty  `db:"counterparty" json:"counterparty"`
	Items        LineItems     `db:"items" json:"items"`
	TaxBreakdown `json:"tax"`
	SubTotal     float64       `db:"sub_total" json:"sub_total"`
	Total        float64       `db:"total" json:"total"`
	PaidAmount   float64       `db:"paid_amount" json:"paid_amount"`
	Status       PaymentStatus `db:"status" json:"status"`
	Notes        string        `db:"notes" json:"notes"`
	CreatedBy    uuid.UUID     `db:"created_by" json:"created_by"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// Due is the outstanding amount, never negative.
func (d *LedgerDocument) Due() float64 {
	if due := d.Total - d.PaidAmount; due > 0 {
		return due
	}
	return 0
}

// Invoice is an outward supply document carrying a legal sequence number.
type Invoice struct {
	LedgerDocument
	DocumentNumber string     `db:"document_number" json:"document_number"`
	Series         string     `db:"series" json:"series"`
	FiscalYear     string     `db:"fiscal_year" json:"fiscal_year"`
	CustomerID     *uuid.UUID `db:"customer_id" json:"customer_id,omitempty"`
}

// Purchase is an inward supply document. Purchases are not numbered.
type Purchase struct {
	LedgerDocument
}

// SequenceKey identifies one independent invoice number sequence.
type SequenceKey struct {
	TenantID   uuid.UUID
	Series     string
	FiscalYear string
}

func (k SequenceKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.TenantID, k.Series, k.FiscalYear)
}

// LedgerFilter narrows document listings, reports and exports.
type LedgerFilter struct {
	From        *time.Time
	To          *time.Time
	Query       string
	Status      PaymentStatus
	Outstanding bool
	Offset      int
	Limit       int
}

// Page describes the window a listing was served with.
type Page struct {
	Total  int
	Offset int
	Limit  int
}

func scanJSON(src, dest any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dest)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported JSON source type %T", src)
	}
}
