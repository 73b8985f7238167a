package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"khata/internal/config"
	"khata/internal/domain"
)

// NewDB creates a new PostgreSQL connection pool.
func NewDB(cfg *config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	return db, nil
}

const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// translateError maps PostgreSQL error codes onto domain errors. op names the
// failing repository method and is kept in the wrapped message.
func translateError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected:
			return fmt.Errorf("%s: %w", op, domain.ErrConcurrencyConflict)
		case pgUniqueViolation:
			if pgErr.ConstraintName == "uq_invoices_tenant_document_number" {
				return fmt.Errorf("%s: %w", op, domain.ErrDuplicateDocumentNumber)
			}
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
