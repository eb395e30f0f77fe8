package errors

import (
	"fmt"
	"testing"
)

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("leg 2: %w", NewValidationError("premium", -1.0, "must be non-negative"))

	if !Is(err, ErrInputValidation) {
		t.Fatalf("expected %v to match ErrInputValidation", err)
	}

	var ve *ValidationError
	if !As(err, &ve) {
		t.Fatalf("expected ValidationError in chain")
	}
	if ve.Field != "premium" {
		t.Errorf("Field = %q, want premium", ve.Field)
	}
}

func TestStrategyErrorUnwrap(t *testing.T) {
	err := NewStrategyError("condor", "not registered", ErrUnknownStrategy)
	if !Is(err, ErrUnknownStrategy) {
		t.Fatalf("expected ErrUnknownStrategy in chain")
	}
	want := "strategy error [condor]: not registered: unknown strategy"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should be nil")
	}
}

func TestValidationErrorsWalksJoin(t *testing.T) {
	err := Join(
		NewValidationError("underlying", 0, "must be positive"),
		fmt.Errorf("leg 1: %w", Join(
			NewValidationError("premium", -1, "must be non-negative"),
			NewValidationError("strike", -2, "must be non-negative"),
		)),
	)

	got := ValidationErrors(err)
	if len(got) != 3 {
		t.Fatalf("got %d validation errors, want 3", len(got))
	}
	fields := []string{got[0].Field, got[1].Field, got[2].Field}
	want := []string{"underlying", "premium", "strike"}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("fields = %v, want %v", fields, want)
			break
		}
	}

	if ValidationErrors(nil) != nil {
		t.Error("nil error should yield no validation errors")
	}
}
