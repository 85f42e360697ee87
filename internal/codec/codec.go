// Package codec serializes the inverted index to disk and reconstructs
// it losslessly. Two codecs exist: a human-readable JSON form and a
// compact little-endian binary form. Codecs are selected by storage
// policy name through a small registry.
package codec

import (
	"io"

	"github.com/searchcore/invindex/internal/index"
	apperrors "github.com/searchcore/invindex/pkg/errors"
)

// Codec converts an index to and from a persisted representation.
// Encode reports the number of bytes written; Decode reconstructs an
// index value-equal to the one encoded.
type Codec interface {
	Name() string
	Encode(w io.Writer, ix *index.Index) (int64, error)
	Decode(r io.Reader) (*index.Index, error)
}

// New returns the codec registered under the given storage policy name:
// "json" for the textual codec, "struct" for the binary codec. Unknown
// names fail with ErrConfiguration; there is no silent default.
func New(name string) (Codec, error) {
	switch name {
	case "json":
		return JSON{}, nil
	case "struct":
		return Binary{}, nil
	default:
		return nil, apperrors.Configuration("unknown storage policy %q (want %q or %q)", name, "json", "struct")
	}
}

// Names lists the registered storage policy names.
func Names() []string {
	return []string{"json", "struct"}
}
