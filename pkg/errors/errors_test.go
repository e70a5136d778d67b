package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		kind    string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "Apriori.Fit",
			kind:    "empty data",
			err:     fmt.Errorf("test error"),
			wantMsg: "basketmine: Apriori.Fit: empty data: test error",
		},
		{
			name:    "without original error",
			op:      "Recommender.Suggest",
			kind:    "not fitted",
			err:     nil,
			wantMsg: "basketmine: Recommender.Suggest: not fitted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			formatted := fmt.Sprintf("%+v", err)
			if !strings.Contains(formatted, "errors_test.go") {
				t.Error("Expected stack trace to contain test file name")
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("TransactionEncoder.InverseTransform", 4, 3, 1)

	want := "basketmine: TransactionEncoder.InverseTransform: dimension mismatch on axis 1 (items). Expected 4, got 3"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("TransactionEncoder", "Transform")

	want := "basketmine: TransactionEncoder: this estimator is not fitted yet. Call Fit() before using Transform()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("min_support", "must be in (0, 1]", 1.5)

	want := "basketmine: validation failed for parameter 'min_support': must be in (0, 1] (got: 1.5)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValidationError
	if !As(err, &valErr) {
		t.Fatal("Error should be castable to *ValidationError")
	}
	if valErr.ParamName != "min_support" {
		t.Errorf("ParamName = %q", valErr.ParamName)
	}
}

func TestNewSchemaError(t *testing.T) {
	err := NewSchemaError([]string{"Member_number", "itemDescription"}, []string{"Date"})

	msg := err.Error()
	for _, want := range []string{`"Member_number"`, `"itemDescription"`, `available: ["Date"]`} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, want it to contain %s", msg, want)
		}
	}

	var schemaErr *SchemaError
	if !As(err, &schemaErr) {
		t.Fatal("Error should be castable to *SchemaError")
	}
	if len(schemaErr.Missing) != 2 {
		t.Errorf("Missing = %v", schemaErr.Missing)
	}
}

func TestNewValueError(t *testing.T) {
	err := NewValueError("TransactionEncoder.Transform", `unknown item "tea"`)
	if got, want := err.Error(), `basketmine: TransactionEncoder.Transform: unknown item "tea"`; got != want {
		t.Errorf("Error() = %v, want %v", got, want)
	}
	var valErr *ValueError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValueError")
	}
}

func TestDroppedRowWarning(t *testing.T) {
	w := NewDroppedRowWarning(7, "1808", "empty item label")
	if got, want := w.Error(), `row 7 (key "1808") dropped: empty item label`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	w = NewDroppedRowWarning(0, "", "empty grouping key")
	if got, want := w.Error(), `row (key "") dropped: empty grouping key`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWarnRouting(t *testing.T) {
	var got []error
	SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(func(w error) {})

	Warn(NewDroppedRowWarning(1, "a", "x"))
	if len(got) != 1 {
		t.Fatalf("expected 1 warning through the handler, got %d", len(got))
	}

	var viaZerolog int
	SetZerologWarnFunc(func(w error) { viaZerolog++ })
	Warn(NewDroppedRowWarning(2, "b", "y"))
	SetZerologWarnFunc(nil)

	if viaZerolog != 1 || len(got) != 1 {
		t.Errorf("zerolog func should take precedence: zerolog=%d handler=%d", viaZerolog, len(got))
	}
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrap(ErrEmptyData, "in Apriori.Fit")

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}
	if !strings.Contains(wrapped.Error(), "in Apriori.Fit") {
		t.Error("Expected wrapped error to contain wrapping message")
	}
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrUnknownItem, "label %q", "tea")

	if !Is(wrapped, ErrUnknownItem) {
		t.Error("Expected Is(wrapped, ErrUnknownItem) to be true")
	}
	if !strings.Contains(wrapped.Error(), `label "tea"`) {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
}

func TestErrorChaining(t *testing.T) {
	err1 := fmt.Errorf("base error")
	err2 := Wrap(err1, "wrapped once")
	err3 := NewModelError("Operation", "failed", err2)

	if !strings.Contains(err3.Error(), "base error") {
		t.Error("Expected error chain to contain base error")
	}

	formatted := fmt.Sprintf("%+v", err3)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected detailed error to contain stack trace")
	}
}

func TestMark(t *testing.T) {
	err := Mark(NewValueError("TransactionEncoder.Transform", `unknown item "tea"`), ErrUnknownItem)

	if !Is(err, ErrUnknownItem) {
		t.Error("Expected Is(err, ErrUnknownItem) to be true")
	}
	var valErr *ValueError
	if !As(err, &valErr) {
		t.Fatalf("Expected ValueError, got %T", err)
	}
	if valErr.Op != "TransactionEncoder.Transform" {
		t.Errorf("unexpected op %q", valErr.Op)
	}
}
