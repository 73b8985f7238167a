package ledger_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"khata/internal/domain"
	"khata/internal/ledger"
)

func TestApplyPayment(t *testing.T) {
	tests := []struct {
		name       string
		total      float64
		proposed   float64
		wantPaid   float64
		wantStatus domain.PaymentStatus
	}{
		{"nothing paid", 500, 0, 0, domain.PaymentStatusUnpaid},
		{"half paid", 500, 250, 250, domain.PaymentStatusPartial},
		{"fully paid", 500, 500, 500, domain.PaymentStatusPaid},
		{"overpayment clamps to total", 500, 600, 500, domain.PaymentStatusPaid},
		{"negative clamps to zero", 500, -20, 0, domain.PaymentStatusUnpaid},
		{"nan treated as zero", 500, math.NaN(), 0, domain.PaymentStatusUnpaid},
		{"zero total document", 0, 10, 0, domain.PaymentStatusUnpaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.ApplyPayment(tt.total, tt.proposed)
			assert.Equal(t, tt.wantPaid, got.PaidAmount)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestApplyPayment_Idempotent(t *testing.T) {
	first := ledger.ApplyPayment(500, 320)
	second := ledger.ApplyPayment(500, first.PaidAmount)
	assert.Equal(t, first, second)
	assert.Equal(t, first, ledger.ApplyPayment(500, 320))
}

func TestApplyPayment_ReopensPaidDocument(t *testing.T) {
	paid := ledger.ApplyPayment(500, 500)
	assert.Equal(t, domain.PaymentStatusPaid, paid.Status)

	reopened := ledger.ApplyPayment(500, 100)
	assert.Equal(t, domain.PaymentStatusPartial, reopened.Status)

	unpaid := ledger.ApplyPayment(500, 0)
	assert.Equal(t, domain.PaymentStatusUnpaid, unpaid.Status)
}
