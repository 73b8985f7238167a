package ledger

import (
	"math"
	"strings"

	"khata/internal/domain"
)

// SplitTax computes the GST components of a line. Intra-state supplies split
// the tax equally into CGST and SGST; inter-state supplies carry it all as IGST.
func SplitTax(lineAmount, gstPercent float64, supply domain.SupplyType) (domain.TaxBreakdown, error) {
	if !finite(lineAmount) || !finite(gstPercent) {
		return domain.TaxBreakdown{}, domain.InconsistencyError("non-finite tax input (amount=%v, rate=%v)", lineAmount, gstPercent)
	}
	tax := lineAmount * gstPercent / 100
	if tax < 0 {
		return domain.TaxBreakdown{}, domain.InconsistencyError("negative tax %.4f (amount=%v, rate=%v)", tax, lineAmount, gstPercent)
	}
	if supply == domain.SupplyInterState {
		return domain.TaxBreakdown{IGST: tax}, nil
	}
	return domain.TaxBreakdown{CGST: tax / 2, SGST: tax / 2}, nil
}

// SaleSupplyType classifies an outward supply from seller to buyer.
//
// When both parties have a GSTIN the embedded state prefixes are compared.
// Otherwise the explicit state codes are compared. If either state is still
// unknown the supply is treated as intra-state.
func SaleSupplyType(seller, buyer domain.TaxParty) domain.SupplyType {
	sellerGST := gstinState(seller.GSTIN)
	buyerGST := gstinState(buyer.GSTIN)
	if sellerGST != "" && buyerGST != "" {
		return supplyFor(sellerGST == buyerGST)
	}
	sellerState := normalizeState(seller.StateCode)
	buyerState := normalizeState(buyer.StateCode)
	if sellerState == "" || buyerState == "" {
		return domain.SupplyIntraState
	}
	return supplyFor(sellerState == buyerState)
}

// PurchaseSupplyType classifies an inward supply from vendor to the tenant.
//
// Each side resolves its own state independently, preferring the GSTIN prefix
// and falling back to the explicit state code. The supply is inter-state only
// when both sides resolve and differ.
func PurchaseSupplyType(tenant, vendor domain.TaxParty) domain.SupplyType {
	vendorState := gstinState(vendor.GSTIN)
	if vendorState == "" {
		vendorState = normalizeState(vendor.StateCode)
	}
	tenantState := gstinState(tenant.GSTIN)
	if tenantState == "" {
		tenantState = normalizeState(tenant.StateCode)
	}
	if vendorState == "" || tenantState == "" {
		return domain.SupplyIntraState
	}
	return supplyFor(vendorState == tenantState)
}

// IsRegistered reports whether a counterparty carries a GST registration.
func IsRegistered(c domain.Counterparty) bool {
	return strings.TrimSpace(c.GSTIN) != ""
}

func gstinState(gstin string) string {
	g := normalizeState(gstin)
	if len(g) < 2 {
		return ""
	}
	return g[:2]
}

func normalizeState(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func supplyFor(sameState bool) domain.SupplyType {
	if sameState {
		return domain.SupplyIntraState
	}
	return domain.SupplyInterState
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
