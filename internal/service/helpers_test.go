package service_test

import (
	"time"

	"github.com/google/uuid"

	"khata/internal/domain"
	"khata/internal/ledger"
)

var calendar = ledger.NewBusinessCalendar(ledger.DefaultBusinessOffsetMinutes)

func testActor() domain.Actor {
	return domain.Actor{
		TenantID:      uuid.New(),
		UserID:        uuid.New(),
		Role:          domain.RoleMember,
		HomeStateCode: "27",
		GSTIN:         "27AAAAA0000A1Z5",
		Email:         "owner@shop.test",
		DisplayName:   "Sharma Stores",
	}
}

func ptr[T any](v T) *T { return &v }

// ledgerDoc builds an intra-state document with consistent totals.
func ledgerDoc(tenantID uuid.UUID, date time.Time, items []domain.LineItem, paid float64) domain.LedgerDocument {
	var sub float64
	var tax domain.TaxBreakdown
	for _, it := range items {
		split, _ := ledger.SplitTax(it.Amount(), it.GSTPercent, domain.SupplyIntraState)
		sub += it.Amount()
		tax = tax.Add(split)
	}
	total := sub + tax.Total()
	state := ledger.ApplyPayment(total, paid)
	return domain.LedgerDocument{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Date:         date,
		Counterparty: domain.Counterparty{Name: "Acme"},
		Items:        items,
		TaxBreakdown: tax,
		SubTotal:     sub,
		Total:        total,
		PaidAmount:   state.PaidAmount,
		Status:       state.Status,
	}
}

func productLine(id uuid.UUID, qty, price, gst float64) domain.LineItem {
	return domain.LineItem{ProductID: &id, Name: "Widget", Quantity: qty, UnitPrice: price, GSTPercent: gst}
}

func day(s string) time.Time {
	t, _ := calendar.StartOfDay(s)
	return t.Add(6 * time.Hour)
}
