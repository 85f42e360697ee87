package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSerializationErrorMatchesKind(t *testing.T) {
	tests := []struct {
		name string
		kind error
	}{
		{"syntax", ErrSyntax},
		{"shape", ErrShape},
		{"layout", ErrLayout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Serialization(tt.kind, "context %d", 42)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("errors.Is(%v, kind) = false", err)
			}
			if !IsSerialization(err) {
				t.Fatalf("IsSerialization(%v) = false", err)
			}
		})
	}
}

func TestSerializationKindsAreDistinct(t *testing.T) {
	err := Serialization(ErrLayout, "truncated")
	if errors.Is(err, ErrSyntax) || errors.Is(err, ErrShape) {
		t.Fatal("layout error must not match other kinds")
	}
}

func TestSerializationErrorMessage(t *testing.T) {
	err := Serialization(ErrSyntax, "at offset %d", 17)
	want := "index file is not valid syntax: at offset 17"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestParseWrapping(t *testing.T) {
	err := Parse("line %d", 3)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("errors.Is(%v, ErrParse) = false", err)
	}
	if IsSerialization(err) {
		t.Fatal("parse errors are not serialization errors")
	}
}

func TestConfigurationWrapping(t *testing.T) {
	err := Configuration("unknown policy %q", "zip")
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("errors.Is(%v, ErrConfiguration) = false", err)
	}
}

func TestWrappedErrorsStayMatchable(t *testing.T) {
	err := fmt.Errorf("loading index: %w", Serialization(ErrLayout, "truncated term count"))
	if !errors.Is(err, ErrLayout) {
		t.Fatal("wrapping must preserve the kind sentinel")
	}
}
