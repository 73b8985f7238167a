package ledger

import (
	"math"

	"khata/internal/domain"
)

// PaymentState is the outcome of applying a proposed paid amount.
type PaymentState struct {
	PaidAmount float64
	Status     domain.PaymentStatus
}

// ApplyPayment clamps proposed into [0, total] and derives the payment status.
// Any state may move to any other; a paid document can be reopened by a lower
// amount. Applying the same proposal twice yields the same state.
func ApplyPayment(total, proposed float64) PaymentState {
	if math.IsNaN(proposed) {
		proposed = 0
	}
	paid := math.Max(0, math.Min(proposed, math.Max(total, 0)))
	return PaymentState{PaidAmount: paid, Status: StatusFor(total, paid)}
}

// StatusFor derives the payment status of a document from its totals.
func StatusFor(total, paid float64) domain.PaymentStatus {
	switch {
	case paid <= 0:
		return domain.PaymentStatusUnpaid
	case paid < total:
		return domain.PaymentStatusPartial
	default:
		return domain.PaymentStatusPaid
	}
}
