package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"fillrate/internal/domain"
)

const (
	codeUniqueViolation = "23505"
	codeUndefinedTable  = "42P01"
)

// mapError translates driver failures into the domain taxonomy. A uniqueness
// violation on (store, sku, week) becomes a ConflictError; a missing table
// means the backend schema is not ready yet, which is a transient
// ConnectivityError like any transport failure.
func mapError(op string, err error, item domain.ReportItem) error {
	if err == nil {
		return nil
	}

	// The server path connects through lib/pq, the admin CLI through pgx.
	var sqlState string
	var pqErr *pq.Error
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pqErr):
		sqlState = string(pqErr.Code)
	case errors.As(err, &pgErr):
		sqlState = pgErr.Code
	}

	switch sqlState {
	case codeUniqueViolation:
		return &domain.ConflictError{Store: item.Store, SKU: item.SKU, Window: item.Window()}
	case codeUndefinedTable:
		return &domain.ConnectivityError{Op: op, Err: err}
	}

	if errors.Is(err, sql.ErrNoRows) {
		return &domain.NotFoundError{ID: item.ID}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &domain.ConnectivityError{Op: op, Err: err}
	}

	// Anything else at this boundary is a transport-level failure.
	return &domain.ConnectivityError{Op: op, Err: err}
}
