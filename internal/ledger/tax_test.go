package ledger_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khata/internal/domain"
	"khata/internal/ledger"
)

func TestSplitTax_IntraState(t *testing.T) {
	tax, err := ledger.SplitTax(1000, 18, domain.SupplyIntraState)
	require.NoError(t, err)

	assert.InDelta(t, 90, tax.CGST, 1e-9)
	assert.InDelta(t, 90, tax.SGST, 1e-9)
	assert.Zero(t, tax.IGST)
	assert.InDelta(t, 180, tax.Total(), 1e-9)
}

func TestSplitTax_InterState(t *testing.T) {
	tax, err := ledger.SplitTax(1000, 18, domain.SupplyInterState)
	require.NoError(t, err)

	assert.Zero(t, tax.CGST)
	assert.Zero(t, tax.SGST)
	assert.InDelta(t, 180, tax.IGST, 1e-9)
}

func TestSplitTax_ZeroRate(t *testing.T) {
	tax, err := ledger.SplitTax(500, 0, domain.SupplyIntraState)
	require.NoError(t, err)
	assert.Zero(t, tax.Total())
}

func TestSplitTax_Inconsistent(t *testing.T) {
	cases := []struct {
		name   string
		amount float64
		rate   float64
	}{
		{"negative rate", 1000, -5},
		{"negative amount", -1000, 18},
		{"nan amount", math.NaN(), 18},
		{"infinite rate", 100, math.Inf(1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ledger.SplitTax(tc.amount, tc.rate, domain.SupplyIntraState)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrComputationInconsistency))
		})
	}
}

func TestSaleSupplyType(t *testing.T) {
	tests := []struct {
		name   string
		seller domain.TaxParty
		buyer  domain.TaxParty
		want   domain.SupplyType
	}{
		{
			name:   "same gstin state",
			seller: domain.TaxParty{GSTIN: "27AAAAA0000A1Z5"},
			buyer:  domain.TaxParty{GSTIN: "27BBBBB0000B1Z5"},
			want:   domain.SupplyIntraState,
		},
		{
			name:   "different gstin state",
			seller: domain.TaxParty{GSTIN: "27AAAAA0000A1Z5"},
			buyer:  domain.TaxParty{GSTIN: "29BBBBB0000B1Z5"},
			want:   domain.SupplyInterState,
		},
		{
			name:   "gstin wins over state code",
			seller: domain.TaxParty{GSTIN: "27AAAAA0000A1Z5", StateCode: "29"},
			buyer:  domain.TaxParty{GSTIN: "27BBBBB0000B1Z5", StateCode: "07"},
			want:   domain.SupplyIntraState,
		},
		{
			name:   "falls back to state codes when buyer unregistered",
			seller: domain.TaxParty{GSTIN: "27AAAAA0000A1Z5", StateCode: "27"},
			buyer:  domain.TaxParty{StateCode: "29"},
			want:   domain.SupplyInterState,
		},
		{
			name:   "state codes compared case-insensitively",
			seller: domain.TaxParty{StateCode: "mh"},
			buyer:  domain.TaxParty{StateCode: " MH "},
			want:   domain.SupplyIntraState,
		},
		{
			name:   "unknown buyer state defaults to intra",
			seller: domain.TaxParty{GSTIN: "27AAAAA0000A1Z5", StateCode: "27"},
			buyer:  domain.TaxParty{},
			want:   domain.SupplyIntraState,
		},
		{
			name:   "seller gstin alone is not used as state",
			seller: domain.TaxParty{GSTIN: "27AAAAA0000A1Z5"},
			buyer:  domain.TaxParty{StateCode: "29"},
			want:   domain.SupplyIntraState,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ledger.SaleSupplyType(tt.seller, tt.buyer))
		})
	}
}

func TestPurchaseSupplyType(t *testing.T) {
	tests := []struct {
		name   string
		tenant domain.TaxParty
		vendor domain.TaxParty
		want   domain.SupplyType
	}{
		{
			name:   "vendor gstin against tenant state code",
			tenant: domain.TaxParty{StateCode: "27"},
			vendor: domain.TaxParty{GSTIN: "29BBBBB0000B1Z5"},
			want:   domain.SupplyInterState,
		},
		{
			name:   "tenant gstin against vendor state code",
			tenant: domain.TaxParty{GSTIN: "27AAAAA0000A1Z5"},
			vendor: domain.TaxParty{StateCode: "27"},
			want:   domain.SupplyIntraState,
		},
		{
			name:   "missing vendor state defaults to intra",
			tenant: domain.TaxParty{GSTIN: "27AAAAA0000A1Z5"},
			vendor: domain.TaxParty{},
			want:   domain.SupplyIntraState,
		},
		{
			name:   "missing tenant state defaults to intra",
			tenant: domain.TaxParty{},
			vendor: domain.TaxParty{GSTIN: "29BBBBB0000B1Z5"},
			want:   domain.SupplyIntraState,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ledger.PurchaseSupplyType(tt.tenant, tt.vendor))
		})
	}
}

func TestIsRegistered(t *testing.T) {
	assert.True(t, ledger.IsRegistered(domain.Counterparty{GSTIN: "27AAAAA0000A1Z5"}))
	assert.False(t, ledger.IsRegistered(domain.Counterparty{GSTIN: "  "}))
}
