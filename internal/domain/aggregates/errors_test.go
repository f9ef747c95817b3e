package aggregates

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormattingAndCodes(t *testing.T) {
	err := Validation("employee.register_payment", "amount %s exceeds outstanding %s", "900.00", "500.00")
	if got := err.Error(); got != "employee.register_payment: amount 900.00 exceeds outstanding 500.00 (validation)" {
		t.Fatalf("unexpected message: %q", got)
	}
	wrapped := fmt.Errorf("handler: %w", err)
	if !IsCode(wrapped, CodeValidation) {
		t.Fatalf("expected validation code through fmt wrap")
	}
	if CodeOf(errors.New("plain")) != "" {
		t.Fatalf("plain error should carry no code")
	}

	var agg *Error
	if !errors.As(NotFound("employee.get", "employee"), &agg) {
		t.Fatalf("expected *Error")
	}
	if agg.Public() != "employee not found" {
		t.Fatalf("unexpected public message: %q", agg.Public())
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(CodeInternal, "op", nil) != nil {
		t.Fatalf("Wrap(nil) must be nil")
	}
	cause := errors.New("boom")
	if !errors.Is(Wrap(CodeInternal, "op", cause), cause) {
		t.Fatalf("Wrap must keep the cause")
	}
}
