package apperr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestKindOf_ThroughWrapping(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("listing select: %w", Store("select listings", cause))

	if KindOf(err) != KindStore {
		t.Fatalf("expected STORE, got %q", KindOf(err))
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable through Unwrap")
	}
	if Is(err, KindNotFoundOrForbidden) {
		t.Fatalf("store error must not look like not-found")
	}
}

func TestKindOf_PlainError(t *testing.T) {
	if KindOf(errors.New("boom")) != "" {
		t.Fatalf("expected empty kind for plain error")
	}
	if Is(nil, KindStore) {
		t.Fatalf("nil is never any kind")
	}
}

func TestValidation_FieldsAndMessage(t *testing.T) {
	err := Validation(map[string]string{
		"title":   "Title must be at least 3 characters",
		"company": "Company name must be at least 2 characters",
	})

	fields := FieldsOf(err)
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	msg := err.Error()
	if strings.Index(msg, "company") > strings.Index(msg, "title") {
		t.Fatalf("expected fields sorted in message, got %q", msg)
	}
}

func TestNew_CapturesStack(t *testing.T) {
	err := NotFoundOrForbidden()
	if len(err.StackTrace()) == 0 {
		t.Fatalf("expected stack to be captured")
	}
}
