package ledger_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khata/internal/domain"
	"khata/internal/ledger"
)

func productLine(id uuid.UUID, qty, price float64) domain.LineItem {
	pid := id
	return domain.LineItem{ProductID: &pid, Name: "item", Quantity: qty, UnitPrice: price, GSTPercent: 18}
}

// unpaidDoc builds an unpaid inter-state document whose totals reconcile.
func unpaidDoc(date time.Time, items []domain.LineItem) domain.LedgerDocument {
	doc := domain.LedgerDocument{ID: uuid.New(), Date: date, Items: items, Status: domain.PaymentStatusUnpaid}
	for _, it := range items {
		doc.SubTotal += it.Amount()
		doc.IGST += it.Amount() * it.GSTPercent / 100
	}
	doc.Total = doc.SubTotal + doc.IGST
	return doc
}

func sale(date time.Time, items ...domain.LineItem) *domain.Invoice {
	return &domain.Invoice{LedgerDocument: unpaidDoc(date, items)}
}

func purchase(date time.Time, items ...domain.LineItem) *domain.Purchase {
	return &domain.Purchase{LedgerDocument: unpaidDoc(date, items)}
}

func TestValuation_WeightedAverage(t *testing.T) {
	productID := uuid.New()
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	v := ledger.NewValuation(day.Add(30 * 24 * time.Hour))

	require.NoError(t, v.AddPurchase(purchase(day, productLine(productID, 5, 80))))
	require.NoError(t, v.AddPurchase(purchase(day.Add(time.Hour), productLine(productID, 15, 1600.0/15))))
	require.NoError(t, v.AddSale(sale(day.Add(2*time.Hour), productLine(productID, 15, 150))))

	snaps := v.Snapshot([]domain.Product{{ID: productID, Name: "Widget", OpeningQuantity: 10}})
	s := snaps[productID]

	assert.InDelta(t, 20, s.PurchasedQty, 1e-9)
	assert.InDelta(t, 2000, s.PurchaseCost, 1e-9)
	assert.InDelta(t, 15, s.SoldQty, 1e-9)
	assert.InDelta(t, 15, s.OnHand, 1e-9)
	assert.InDelta(t, 100, s.WeightedAverageCost, 1e-9)
	assert.InDelta(t, 1500, s.StockValue(), 1e-9)
	assert.InDelta(t, 2250, s.Revenue, 1e-9)
	assert.InDelta(t, 1500, ledger.StockValue(snaps), 1e-9)
}

func TestValuation_IgnoresDocumentsAfterCutoff(t *testing.T) {
	productID := uuid.New()
	cutoff := time.Date(2024, 5, 1, 18, 29, 59, 999e6, time.UTC)
	v := ledger.NewValuation(cutoff)

	require.NoError(t, v.AddPurchase(purchase(cutoff, productLine(productID, 10, 50))))
	require.NoError(t, v.AddPurchase(purchase(cutoff.Add(time.Millisecond), productLine(productID, 10, 500))))
	require.NoError(t, v.AddSale(sale(cutoff.Add(time.Second), productLine(productID, 4, 70))))

	s := v.Snapshot([]domain.Product{{ID: productID}})[productID]
	assert.InDelta(t, 10, s.OnHand, 1e-9)
	assert.InDelta(t, 50, s.WeightedAverageCost, 1e-9)
	assert.Zero(t, s.SoldQty)
}

func TestValuation_OpeningStockWithoutPurchasesHasNoValue(t *testing.T) {
	productID := uuid.New()
	v := ledger.NewValuation(time.Now())

	snaps := v.Snapshot([]domain.Product{{ID: productID, OpeningQuantity: 40}})
	s := snaps[productID]
	assert.InDelta(t, 40, s.OnHand, 1e-9)
	assert.Zero(t, s.WeightedAverageCost)
	assert.Zero(t, ledger.StockValue(snaps))
}

func TestValuation_NegativeOnHandContributesZero(t *testing.T) {
	productID := uuid.New()
	now := time.Now()
	v := ledger.NewValuation(now)

	require.NoError(t, v.AddPurchase(purchase(now.Add(-time.Hour), productLine(productID, 2, 100))))
	require.NoError(t, v.AddSale(sale(now.Add(-time.Minute), productLine(productID, 5, 150))))

	snaps := v.Snapshot([]domain.Product{{ID: productID, OpeningQuantity: -1}})
	assert.InDelta(t, -4, snaps[productID].OnHand, 1e-9)
	assert.Zero(t, snaps[productID].StockValue())
	assert.Zero(t, ledger.StockValue(snaps))
}

func TestValuation_OpeningShortfallAbsorbsPurchases(t *testing.T) {
	productID := uuid.New()
	now := time.Now()
	v := ledger.NewValuation(now)

	require.NoError(t, v.AddPurchase(purchase(now.Add(-time.Hour), productLine(productID, 10, 50))))

	snaps := v.Snapshot([]domain.Product{{ID: productID, OpeningQuantity: -3}})
	s := snaps[productID]
	assert.Equal(t, int64(-3), s.OpeningQuantity)
	assert.InDelta(t, 7, s.OnHand, 1e-9)
	assert.InDelta(t, 50, s.WeightedAverageCost, 1e-9)
	assert.InDelta(t, 350, ledger.StockValue(snaps), 1e-9)
}

func TestValuation_ZeroActivityProductsAppear(t *testing.T) {
	active, idle := uuid.New(), uuid.New()
	now := time.Now()
	v := ledger.NewValuation(now)
	require.NoError(t, v.AddSale(sale(now.Add(-time.Hour), productLine(active, 1, 10))))

	snaps := v.Snapshot([]domain.Product{{ID: active}, {ID: idle, OpeningQuantity: 3}})
	require.Len(t, snaps, 2)
	assert.InDelta(t, 3, snaps[idle].OnHand, 1e-9)
	assert.Equal(t, []uuid.UUID{active}, v.ActiveProductIDs())
}

func TestValuation_ManualLinesIgnored(t *testing.T) {
	now := time.Now()
	v := ledger.NewValuation(now)
	manual := domain.LineItem{Name: "Service charge", Quantity: 1, UnitPrice: 500}

	require.NoError(t, v.AddSale(sale(now.Add(-time.Hour), manual)))
	assert.Empty(t, v.ActiveProductIDs())
}

func TestValuation_MalformedDocumentLeavesStateUnchanged(t *testing.T) {
	productID := uuid.New()
	now := time.Now()
	v := ledger.NewValuation(now)

	bad := sale(now.Add(-time.Hour), productLine(productID, 3, 10), productLine(productID, -1, 10))
	require.Error(t, v.AddSale(bad))
	assert.Empty(t, v.ActiveProductIDs())
}

func TestCheckDocument(t *testing.T) {
	doc := &domain.LedgerDocument{
		SubTotal:     1000,
		TaxBreakdown: domain.TaxBreakdown{CGST: 90, SGST: 90},
		Total:        1180,
		PaidAmount:   100,
		Status:       domain.PaymentStatusPartial,
		Items:        domain.LineItems{{Name: "x", Quantity: 1, UnitPrice: 1000, GSTPercent: 18}},
	}
	assert.NoError(t, ledger.CheckDocument(doc))

	doc.Status = domain.PaymentStatusPaid
	assert.Error(t, ledger.CheckDocument(doc))
	doc.Status = domain.PaymentStatusPartial

	doc.Total = 1200
	assert.Error(t, ledger.CheckDocument(doc))

	doc.Total = 1180
	doc.PaidAmount = 1300
	assert.Error(t, ledger.CheckDocument(doc))
}
