package postgres

import (
	"context"
	"fmt"
	"iter"

	"github.com/jmoiron/sqlx"

	"khata/internal/domain"
)

// streamRows runs query and yields each row scanned into T. A row that does not
// scan is yielded with an error wrapping domain.ErrMalformedRecord and the
// cursor moves on; query and cursor errors end the sequence. The cursor is
// closed when iteration finishes or the consumer stops early.
func streamRows[T any](ctx context.Context, db *sqlx.DB, op, query string, args []interface{}) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		rows, err := db.QueryxContext(ctx, query, args...)
		if err != nil {
			yield(zero, fmt.Errorf("%s: %w", op, err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var item T
			if err := rows.StructScan(&item); err != nil {
				if !yield(item, fmt.Errorf("%s scan: %w: %w", op, domain.ErrMalformedRecord, err)) {
					return
				}
				continue
			}
			if !yield(item, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(zero, fmt.Errorf("%s: %w", op, err))
		}
	}
}
