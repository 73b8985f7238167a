package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"khata/internal/domain"
	"khata/internal/port"
)

// DefaultAllocationRetries bounds how often a conflicting increment is retried.
const DefaultAllocationRetries = 5

// Allocator issues invoice sequence numbers through an atomic store primitive.
// It never reads a counter and writes it back; every number comes from a single
// increment-and-fetch on the store.
type Allocator struct {
	store      port.SequenceStore
	maxRetries int
}

// NewAllocator creates an allocator. maxRetries <= 0 selects DefaultAllocationRetries.
func NewAllocator(store port.SequenceStore, maxRetries int) *Allocator {
	if maxRetries <= 0 {
		maxRetries = DefaultAllocationRetries
	}
	return &Allocator{store: store, maxRetries: maxRetries}
}

// Allocate returns the next sequence value for key, starting at 1.
func (a *Allocator) Allocate(ctx context.Context, key domain.SequenceKey) (int64, error) {
	key.Series = strings.TrimSpace(key.Series)
	if key.Series == "" {
		return 0, domain.NewValidationError("series", "series is required")
	}
	if key.FiscalYear == "" {
		return 0, domain.NewValidationError("fiscal_year", "fiscal year is required")
	}

	var lastErr error
	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		seq, err := a.store.Increment(ctx, key)
		if err == nil {
			if seq < 1 {
				return 0, domain.InconsistencyError("sequence %s returned non-positive value %d", key, seq)
			}
			return seq, nil
		}
		if !errors.Is(err, domain.ErrConcurrencyConflict) {
			return 0, fmt.Errorf("allocating sequence %s: %w", key, err)
		}
		lastErr = err
	}
	return 0, fmt.Errorf("allocating sequence %s after %d retries: %w", key, a.maxRetries, lastErr)
}

// Number is an allocated invoice number.
type Number struct {
	FiscalYear     string
	Series         string
	Seq            int64
	DocumentNumber string
}

// Next allocates the number of an invoice in series dated day. day must
// already be expressed in the business calendar.
func (a *Allocator) Next(ctx context.Context, tenantID uuid.UUID, series string, day time.Time) (Number, error) {
	key := domain.SequenceKey{TenantID: tenantID, Series: strings.TrimSpace(series), FiscalYear: FiscalYear(day)}
	seq, err := a.Allocate(ctx, key)
	if err != nil {
		return Number{}, err
	}
	return Number{
		FiscalYear:     key.FiscalYear,
		Series:         key.Series,
		Seq:            seq,
		DocumentNumber: DocumentNumber(key.FiscalYear, key.Series, seq),
	}, nil
}
