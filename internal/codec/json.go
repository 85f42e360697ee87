package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/searchcore/invindex/internal/index"
	apperrors "github.com/searchcore/invindex/pkg/errors"
)

// JSON is the textual codec: a single compact JSON object whose keys are
// terms and whose values are lists of document ids. Terms appear in
// store insertion order and ids in postings insertion order, so encoding
// is byte-deterministic for a given construction sequence.
type JSON struct{}

func (JSON) Name() string { return "json" }

// Encode writes the object with ", " and ": " separators, no
// indentation, and no trailing newline. An empty index encodes to "{}".
func (JSON) Encode(w io.Writer, ix *index.Index) (int64, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, term := range ix.Terms() {
		if i > 0 {
			buf.WriteString(", ")
		}
		key, err := json.Marshal(term)
		if err != nil {
			return 0, fmt.Errorf("encoding term %q: %w", term, err)
		}
		buf.Write(key)
		buf.WriteString(": [")
		for j, id := range ix.Postings(term).IDs() {
			if j > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(strconv.FormatUint(uint64(id), 10))
		}
		buf.WriteByte(']')
	}
	buf.WriteByte('}')

	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// Decode parses the object back into an index. Malformed JSON fails with
// ErrSyntax; well-formed JSON of the wrong shape (a non-object top
// level, postings that are not non-negative integer lists) fails with
// ErrShape. A partial mapping is never returned.
func (JSON) Decode(r io.Reader) (*index.Index, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, classifyJSONError(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, apperrors.Serialization(apperrors.ErrShape, "top-level value is not an object")
	}

	ix := index.New()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, classifyJSONError(err)
		}
		term, ok := keyTok.(string)
		if !ok {
			return nil, apperrors.Serialization(apperrors.ErrShape, "object key is not a string")
		}
		if err := decodePostings(dec, ix, term); err != nil {
			return nil, err
		}
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, classifyJSONError(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, apperrors.Serialization(apperrors.ErrSyntax, "trailing data after index object")
	}
	return ix, nil
}

// decodePostings consumes one postings list for term and records its ids.
func decodePostings(dec *json.Decoder, ix *index.Index, term string) error {
	tok, err := dec.Token()
	if err != nil {
		return classifyJSONError(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return apperrors.Serialization(apperrors.ErrShape, "postings for term %q are not a list", term)
	}
	ix.Touch(term)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return classifyJSONError(err)
		}
		num, ok := tok.(json.Number)
		if !ok {
			return apperrors.Serialization(apperrors.ErrShape, "posting for term %q is not an integer", term)
		}
		id, err := num.Int64()
		if err != nil || id < 0 || id > int64(^uint32(0)) {
			return apperrors.Serialization(apperrors.ErrShape, "posting %s for term %q is not a valid document id", num, term)
		}
		ix.Add(term, uint32(id))
	}
	if _, err := dec.Token(); err != nil { // closing ']'
		return classifyJSONError(err)
	}
	return nil
}

// classifyJSONError maps encoding/json failures onto the serialization
// taxonomy: malformed input is a syntax error, everything else a shape
// error.
func classifyJSONError(err error) error {
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &syntaxErr):
		return apperrors.Serialization(apperrors.ErrSyntax, "%v at offset %d", syntaxErr, syntaxErr.Offset)
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return apperrors.Serialization(apperrors.ErrSyntax, "unexpected end of input")
	default:
		return apperrors.Serialization(apperrors.ErrShape, "%v", err)
	}
}
