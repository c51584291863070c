package errormapper

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := map[string]int{
		ErrorCodeEmptyCart:         http.StatusBadRequest,
		"empty_cart":               http.StatusBadRequest,
		ErrorCodeOutOfStock:        http.StatusConflict,
		ErrorCodeInvalidTransition: http.StatusConflict,
		ErrorCodePaymentFailure:    http.StatusBadGateway,
		ErrorCodeNotFound:          http.StatusNotFound,
		"SOMETHING_NEW":            http.StatusInternalServerError,
	}
	for code, want := range tests {
		if got := HTTPStatus(code); got != want {
			t.Errorf("HTTPStatus(%q) = %d, want %d", code, got, want)
		}
	}
}

func TestDescribe(t *testing.T) {
	wrapped := fmt.Errorf("checkout: %w", New(ErrorCodeOutOfStock, "not enough stock for night-cream"))
	status, code, msg := Describe(wrapped)
	if status != http.StatusConflict || code != ErrorCodeOutOfStock || msg != "not enough stock for night-cream" {
		t.Fatalf("Describe = %d %q %q", status, code, msg)
	}

	status, code, msg = Describe(errors.New("pq: connection refused"))
	if status != http.StatusInternalServerError || code != ErrorCodeSystemError || msg != "internal server error" {
		t.Fatalf("plain errors must not leak details, got %d %q %q", status, code, msg)
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("provider said no")
	err := Wrap(ErrorCodePaymentFailure, "payment could not be started", cause)
	if !errors.Is(err, cause) {
		t.Fatal("wrapped cause should be reachable with errors.Is")
	}
	if CodeOf(err) != ErrorCodePaymentFailure {
		t.Fatalf("CodeOf = %q", CodeOf(err))
	}
	if CodeOf(cause) != ErrorCodeSystemError {
		t.Fatal("uncoded errors should report SYS_ERR")
	}
}
