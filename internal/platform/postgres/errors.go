package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/wishlist-api/internal/store"
)

// uniqueViolationCode is the PostgreSQL error code for unique constraint violations.
const uniqueViolationCode = "23505"

// MapError maps a database error to the matching store sentinel, wrapping
// the original error so callers keep the full chain for logging. A missing
// row becomes store.ErrItemNotFound and a unique violation becomes
// store.ErrTitleExists; the title is the table's only unique column besides
// the key. Errors without a specific mapping pass through unchanged and
// surface as generic storage failures at the boundary.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrItemNotFound, err)
	}

	if IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", store.ErrTitleExists, err)
	}

	return err
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation. The wishlist title conflict is detected this way,
// from the constraint itself, never from a check-then-act pre-query.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// CheckRowsAffected returns store.ErrItemNotFound when an UPDATE or DELETE
// touched no rows, which means the target item does not exist.
func CheckRowsAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return store.ErrItemNotFound
	}

	return nil
}
