package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/wishlist-api/internal/api/shared"
	"github.com/phrazzld/wishlist-api/internal/domain"
	"github.com/phrazzld/wishlist-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error kind. The status code is the authoritative
// signal for clients; message strings are looked up separately.
// Auth rejections never reach this mapping: the middleware answers them
// directly with their fixed 401/403 bodies.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrItemNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrTitleExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrInvalidActive):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the stable, client-facing message for the
// error kind. Unknown errors get the caller's fallback so that storage
// internals never leak.
func GetSafeErrorMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, store.ErrItemNotFound):
		return msgItemNotFound

	case errors.Is(err, store.ErrTitleExists):
		return msgDuplicateTitle

	case errors.Is(err, domain.ErrEmptyTitle):
		return msgTitleRequired

	case errors.Is(err, domain.ErrInvalidActive):
		return "Invalid wishlist item data"

	default:
		return fallback
	}
}

// respondWithMappedError performs the single, exhaustive translation from
// an error kind to status code and body shape. Title conflicts carry the
// details.field payload; unexpected errors are logged (redacted) and
// answered with the generic fallback message.
func respondWithMappedError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err, fallback)

	switch {
	case status == http.StatusConflict:
		shared.RespondWithConflict(w, r, message, "title")
	case status >= http.StatusInternalServerError:
		shared.RespondWithErrorAndLog(w, r, status, message, err)
	default:
		shared.RespondWithError(w, r, status, message)
	}
}
