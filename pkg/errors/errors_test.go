package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("row missing")
	err := Wrap(CodeNotFound, cause, "proposal not found")

	if err.Code() != CodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", err.Code())
	}
	if !stdErrors.Is(err, cause) {
		t.Error("wrapped error should unwrap to cause")
	}
	if err.Error() != "NOT_FOUND: proposal not found" {
		t.Errorf("unexpected error string %q", err.Error())
	}
}

func TestAsThroughWrapping(t *testing.T) {
	inner := New(CodeDuplicate, "proposal number already exists")
	outer := fmt.Errorf("create proposal: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatal("expected typed error through fmt wrapping")
	}
	if typed.Code() != CodeDuplicate {
		t.Errorf("expected DUPLICATE_ENTRY, got %s", typed.Code())
	}
}

func TestAsNilForPlainError(t *testing.T) {
	if As(stdErrors.New("plain")) != nil {
		t.Error("plain errors should not map to a typed error")
	}
	if As(nil) != nil {
		t.Error("nil should map to nil")
	}
}

func TestMetadataFor(t *testing.T) {
	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeNotFound, http.StatusNotFound},
		{CodeDuplicate, http.StatusConflict},
		{CodeEmailSend, http.StatusBadGateway},
		{Code("UNKNOWN"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Errorf("%s: expected status %d, got %d", tc.code, tc.status, got)
		}
	}
}
