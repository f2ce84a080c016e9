package errors

import (
	"context"
	"errors"
	"testing"
)

func TestDomainError(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		err := New(CodeNotFound, "no block matched")
		if err.Error() != "[NOT_FOUND] no block matched" {
			t.Errorf("expected [NOT_FOUND] no block matched, got %s", err.Error())
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		original := errors.New("original error")
		err := Wrap(original, CodeInternal, "internal failure")
		expected := "[INTERNAL_ERROR] internal failure: original error"
		if err.Error() != expected {
			t.Errorf("expected %s, got %s", expected, err.Error())
		}
	})

	t.Run("IsCode", func(t *testing.T) {
		err := New(CodeValidationError, "invalid input")
		if !IsCode(err, CodeValidationError) {
			t.Error("expected IsCode to return true for CodeValidationError")
		}
		if IsCode(err, CodeNotFound) {
			t.Error("expected IsCode to return false for CodeNotFound")
		}
	})

	t.Run("IsCodeWithWrapped", func(t *testing.T) {
		original := errors.New("original error")
		err := Wrap(original, CodeInternal, "internal failure")
		if !IsCode(err, CodeInternal) {
			t.Error("expected IsCode to return true for wrapped CodeInternal")
		}
	})

	t.Run("Cancelled", func(t *testing.T) {
		err := Cancelled(context.Canceled, "scan aborted")
		if !IsCode(err, CodeCancelled) {
			t.Error("expected CodeCancelled")
		}
		if !errors.Is(err, context.Canceled) {
			t.Error("expected errors.Is(err, context.Canceled) to hold")
		}
	})

	t.Run("AddContext", func(t *testing.T) {
		err := New(CodeNotFound, "no block matched")
		err = AddContext(err, CtxQuery, "thm:main")
		var de *DomainError
		if !errors.As(err, &de) {
			t.Fatal("expected DomainError")
		}
		if de.Context[CtxQuery] != "thm:main" {
			t.Errorf("expected context query thm:main, got %v", de.Context[CtxQuery])
		}
	})
}
