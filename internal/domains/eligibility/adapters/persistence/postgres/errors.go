package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/ports"
)

// SQLSTATE classes for rows the schema refused.
const (
	sqlStateClassIntegrity     = "23"
	sqlStateClassDataException = "22"
)

// classify maps driver errors onto the store's error taxonomy. Anything the schema did not
// reject is reported as the medium being unavailable; the driver error stays in the chain for logs.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if isConstraintViolation(err) {
		return fmt.Errorf("%w: %s: %w", ports.ErrConstraintViolation, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ports.ErrStorageUnavailable, op, err)
}

func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return strings.HasPrefix(pgErr.Code, sqlStateClassIntegrity) ||
		strings.HasPrefix(pgErr.Code, sqlStateClassDataException)
}
