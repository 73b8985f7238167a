package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReportPeriod echoes the calendar dates a report was requested for.
type ReportPeriod struct {
	From *string `json:"from"`
	To   *string `json:"to"`
}

// SalesSummary aggregates invoice totals over a period.
type SalesSummary struct {
	Count    int     `json:"count"`
	SubTotal float64 `json:"sub_total"`
	Total    float64 `json:"total"`
	Paid     float64 `json:"paid"`
	CGST     float64 `json:"cgst"`
	SGST     float64 `json:"sgst"`
	IGST     float64 `json:"igst"`
	Due      float64 `json:"due"`
}

// ValuationSnapshot is the derived stock position of one product at an instant.
// It is recomputed on every request.
type ValuationSnapshot struct {
	ProductID           uuid.UUID `json:"product_id"`
	AsOf                time.Time `json:"as_of"`
	OpeningQuantity     int64     `json:"opening_qty"`
	PurchasedQty        float64   `json:"purchased_qty"`
	PurchaseCost        float64   `json:"purchase_cost"`
	SoldQty             float64   `json:"sold_qty"`
	OnHand              float64   `json:"on_hand"`
	WeightedAverageCost float64   `json:"weighted_average_cost"`
	Revenue             float64   `json:"revenue"`
}

// StockValue is the value of the non-negative on-hand quantity at average cost.
func (v ValuationSnapshot) StockValue() float64 {
	if v.OnHand <= 0 {
		return 0
	}
	return v.OnHand * v.WeightedAverageCost
}

// StockRow is one product line of the stock snapshot report.
type StockRow struct {
	ProductID           uuid.UUID `json:"product_id"`
	Name                string    `json:"name"`
	Unit                string    `json:"unit"`
	OpeningQuantity     int64     `json:"opening_qty"`
	PurchasedQty        float64   `json:"purchased_qty"`
	SoldQty             float64   `json:"sold_qty"`
	OnHand              float64   `json:"on_hand"`
	UnitPrice           float64   `json:"price"`
	WeightedAverageCost float64   `json:"weighted_average_cost"`
	StockValue          float64   `json:"stock_value"`
	Revenue             float64   `json:"revenue"`
}

// ValuationReport is the total stock value at an instant.
type ValuationReport struct {
	Date       time.Time `json:"date"`
	StockValue float64   `json:"stock_value"`
}

// ProfitAndLoss reports gross profit for a period using weighted-average cost.
type ProfitAndLoss struct {
	Period      ReportPeriod `json:"period"`
	Revenue     float64      `json:"revenue"`
	COGS        float64      `json:"cogs"`
	GrossProfit float64      `json:"gross_profit"`
}

// BalanceSheetAssets lists the tracked asset classes.
type BalanceSheetAssets struct {
	Inventory          float64 `json:"inventory"`
	AccountsReceivable float64 `json:"accounts_receivable"`
	Total              float64 `json:"total"`
}

// BalanceSheetLiabilities lists the tracked liability classes.
type BalanceSheetLiabilities struct {
	AccountsPayable float64 `json:"accounts_payable"`
	Total           float64 `json:"total"`
}

// BalanceSheet is a simplified snapshot. Equity is the balancing figure.
type BalanceSheet struct {
	AsOf        time.Time               `json:"as_of"`
	Assets      BalanceSheetAssets      `json:"assets"`
	Liabilities BalanceSheetLiabilities `json:"liabilities"`
	Equity      float64                 `json:"equity"`
}

// BalanceSheetDelta is end minus start for each total.
type BalanceSheetDelta struct {
	Assets      float64 `json:"assets"`
	Liabilities float64 `json:"liabilities"`
	Equity      float64 `json:"equity"`
}

// BalanceSheetRange compares two balance sheet snapshots.
type BalanceSheetRange struct {
	From  BalanceSheet      `json:"from"`
	To    BalanceSheet      `json:"to"`
	Delta BalanceSheetDelta `json:"delta"`
}

// TaxBucket is a taxable value with its GST components.
type TaxBucket struct {
	TaxableValue float64 `json:"taxable_value"`
	CGST         float64 `json:"cgst"`
	SGST         float64 `json:"sgst"`
	IGST         float64 `json:"igst"`
	Total        float64 `json:"total"`
}

// GSTR1PartyType splits outward supplies by whether the buyer is registered.
type GSTR1PartyType struct {
	B2B TaxBucket `json:"b2b"`
	B2C TaxBucket `json:"b2c"`
}

// GSTR1SupplyType splits outward supplies by jurisdiction.
type GSTR1SupplyType struct {
	Intra TaxBucket `json:"intra"`
	Inter TaxBucket `json:"inter"`
}

// GSTR1RateRow is the per-rate breakdown of outward supplies.
type GSTR1RateRow struct {
	Rate float64 `json:"rate"`
	TaxBucket
}

// GSTR1HSNRow is the per-HSN breakdown of outward supplies.
type GSTR1HSNRow struct {
	HSN          string  `json:"hsn"`
	TaxableValue float64 `json:"taxable_value"`
	Tax          float64 `json:"tax"`
	Total        float64 `json:"total"`
}

// GSTR1Summary is the outward supplies return summary.
type GSTR1Summary struct {
	Period       ReportPeriod    `json:"period"`
	Totals       TaxBucket       `json:"totals"`
	ByPartyType  GSTR1PartyType  `json:"by_party_type"`
	BySupplyType GSTR1SupplyType `json:"by_supply_type"`
	ByRate       []GSTR1RateRow  `json:"by_rate"`
	ByHSN        []GSTR1HSNRow   `json:"by_hsn"`
}

// GSTR3BOutward is the outward tax liability section.
type GSTR3BOutward struct {
	TaxableValue float64 `json:"taxable_value"`
	CGST         float64 `json:"cgst"`
	SGST         float64 `json:"sgst"`
	IGST         float64 `json:"igst"`
	TotalTax     float64 `json:"total_tax"`
	GrossValue   float64 `json:"gross_value"`
}

// GSTR3BInward is the input tax credit section.
type GSTR3BInward struct {
	TaxableValue float64 `json:"taxable_value"`
	CGST         float64 `json:"cgst"`
	SGST         float64 `json:"sgst"`
	IGST         float64 `json:"igst"`
	TotalTax     float64 `json:"total_tax"`
}

// GSTR3BSummary nets outward liability against input credit.
type GSTR3BSummary struct {
	Period        ReportPeriod  `json:"period"`
	Outward       GSTR3BOutward `json:"outward"`
	Inward        GSTR3BInward  `json:"inward"`
	NetTaxPayable float64       `json:"net_tax_payable"`
}

// EntityCounts is the quick dashboard counter set.
type EntityCounts struct {
	Products  int `json:"products"`
	Customers int `json:"customers"`
	Invoices  int `json:"invoices"`
}

// InvoiceRow is one record of the invoice export stream.
type InvoiceRow struct {
	DocumentNumber   string
	Date             time.Time
	CounterpartyName string
	SubTotal         float64
	Tax              float64
	Total            float64
}

// ExportArchive describes an export stored in object storage.
type ExportArchive struct {
	Key          string    `json:"key"`
	DownloadURL  string    `json:"download_url"`
	Rows         int       `json:"rows"`
	GeneratedAt  time.Time `json:"generated_at"`
	NotifiedUser bool      `json:"notified_user"`
}
