// Package errs defines the error kinds shared by the therapy core so that
// HTTP handlers can map every failure to a specific externally visible
// outcome instead of a generic 500.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound marks lookups for unknown patient/session/assessment ids.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks an actor acting on an entity outside their scope.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidState marks state-machine violations, e.g. sampling or
	// completing an already-completed session.
	ErrInvalidState = errors.New("invalid state")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func Validation(field, reason string) error {
	return ValidationError{Field: field, Reason: reason}
}

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// HTTPStatus maps the shared error kinds to response codes. Errors outside
// the taxonomy fall through to 500.
func HTTPStatus(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
