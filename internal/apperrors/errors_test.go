package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  *DomainError
		want int
	}{
		{NotFound("x", nil), http.StatusNotFound},
		{InvalidInput("x", nil), http.StatusBadRequest},
		{Unauthorized("x", nil), http.StatusUnauthorized},
		{Forbidden("x", nil), http.StatusForbidden},
		{Internal("x", nil), http.StatusInternalServerError},
		{Unavailable("x", nil), http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		if got := tc.err.HTTPStatus(); got != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.err.Type, got, tc.want)
		}
	}
}

func TestUnwrapAndStack(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("fetching job", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause must be reachable via errors.Is")
	}
	if len(err.StackTrace()) == 0 {
		t.Error("stack must be captured")
	}
	if err.Error() != "INTERNAL: fetching job: connection refused" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestAsDomainError(t *testing.T) {
	src := NotFound("job not found", nil)
	wrapped := fmt.Errorf("list: %w", src)

	if got := AsDomainError(wrapped); got != src {
		t.Errorf("AsDomainError should unwrap, got %v", got)
	}

	plain := errors.New("boom")
	if got := AsDomainError(plain); got.Type != ErrTypeInternal {
		t.Errorf("plain errors default to INTERNAL, got %s", got.Type)
	}
}
