package errs

import (
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("tempo", "must be positive"), http.StatusBadRequest},
		{ErrNotFound, http.StatusNotFound},
		{ErrForbidden, http.StatusForbidden},
		{ErrInvalidState, http.StatusConflict},
		{fmt.Errorf("session lookup: %w", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.want, got)
		}
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := Validation("sync_accuracy", "must be between 0 and 100")
	if err.Error() != "sync_accuracy: must be between 0 and 100" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !IsValidation(err) {
		t.Fatal("expected IsValidation to match")
	}
	if IsValidation(ErrNotFound) {
		t.Fatal("expected IsValidation to reject sentinel errors")
	}
}
