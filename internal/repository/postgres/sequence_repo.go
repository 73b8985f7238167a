package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"khata/internal/domain"
	"khata/internal/port"
)

type sequenceRepo struct {
	db *sqlx.DB
}

// NewSequenceRepo creates a PostgreSQL-backed SequenceStore. Each increment is
// a single upsert, so the row lock serializes concurrent callers of one key.
func NewSequenceRepo(db *sqlx.DB) port.SequenceStore {
	return &sequenceRepo{db: db}
}

func (r *sequenceRepo) Increment(ctx context.Context, key domain.SequenceKey) (int64, error) {
	query := `INSERT INTO sequence_counters (tenant_id, series, fiscal_year, seq, updated_at)
		VALUES ($1, $2, $3, 1, NOW())
		ON CONFLICT (tenant_id, series, fiscal_year)
		DO UPDATE SET seq = sequence_counters.seq + 1, updated_at = NOW()
		RETURNING seq`

	var seq int64
	if err := r.db.GetContext(ctx, &seq, query, key.TenantID, key.Series, key.FiscalYear); err != nil {
		return 0, translateError("sequenceRepo.Increment", err)
	}
	return seq, nil
}

func (r *sequenceRepo) Current(ctx context.Context, key domain.SequenceKey) (int64, error) {
	var seq int64
	err := r.db.GetContext(ctx, &seq,
		"SELECT seq FROM sequence_counters WHERE tenant_id = $1 AND series = $2 AND fiscal_year = $3",
		key.TenantID, key.Series, key.FiscalYear)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("sequenceRepo.Current: %w", err)
	}
	return seq, nil
}
