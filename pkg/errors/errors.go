// Package errors defines the error taxonomy shared by the index builder,
// the storage codecs, and the CLI. Sentinels classify a failure; the
// SerializationError wrapper attaches context while staying matchable
// with errors.Is.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrParse marks a malformed document-source line or record. It is
	// fatal for the whole build: no partial index is ever returned.
	ErrParse = errors.New("malformed document record")

	// ErrSyntax marks textual codec input that is not well-formed JSON.
	ErrSyntax = errors.New("index file is not valid syntax")

	// ErrShape marks textual codec input that parses but has the wrong
	// shape, such as postings that are not integer lists.
	ErrShape = errors.New("index file has unexpected shape")

	// ErrLayout marks binary codec input that is truncated or declares
	// lengths inconsistent with the actual byte count.
	ErrLayout = errors.New("index file layout is inconsistent")

	// ErrConfiguration marks an unknown storage policy, source kind, or
	// encoding name.
	ErrConfiguration = errors.New("invalid configuration")
)

// SerializationError wraps one of the codec sentinels (ErrSyntax,
// ErrShape, ErrLayout) with codec-specific context.
type SerializationError struct {
	Kind    error
	Message string
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Message)
}

func (e *SerializationError) Unwrap() error {
	return e.Kind
}

// Serialization builds a SerializationError for the given kind sentinel.
func Serialization(kind error, format string, args ...any) *SerializationError {
	return &SerializationError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Parse wraps a document-source failure so that errors.Is(err, ErrParse)
// holds for callers.
func Parse(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParse, fmt.Sprintf(format, args...))
}

// Configuration wraps a configuration failure so that
// errors.Is(err, ErrConfiguration) holds for callers.
func Configuration(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// IsSerialization reports whether err belongs to the serialization branch
// of the taxonomy (syntax, shape, or layout).
func IsSerialization(err error) bool {
	return errors.Is(err, ErrSyntax) || errors.Is(err, ErrShape) || errors.Is(err, ErrLayout)
}
