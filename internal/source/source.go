// Package source supplies document streams for the index builder. A
// document is an externally assigned non-negative id plus its raw text;
// sources exist for line-oriented dataset files, PostgreSQL tables, and
// bounded Kafka topics.
package source

import (
	"context"
	"io"
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/searchcore/invindex/pkg/errors"
)

// Document is one (id, text) pair from a document collection.
type Document struct {
	ID   uint32
	Text string
}

// Source yields documents one at a time. Next returns io.EOF once the
// stream is exhausted. Streams are consumed exactly once.
type Source interface {
	Next(ctx context.Context) (Document, error)
	Close() error
}

// lineRe matches a leading integer id, one whitespace separator, and the
// document text.
var lineRe = regexp.MustCompile(`^(\d+)\s(.+)$`)

// ParseLine splits a raw dataset line into a Document. Lines that do not
// carry an id, a separator, and text fail with ErrParse.
func ParseLine(line string) (Document, error) {
	line = strings.TrimRight(line, " \t\r\n")
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return Document{}, apperrors.Parse("unable to parse line %q", line)
	}
	id, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return Document{}, apperrors.Parse("document id %q out of range", m[1])
	}
	return Document{ID: uint32(id), Text: m[2]}, nil
}

// Slice is an in-memory Source, used by tests and by sources that buffer
// their input up front.
type Slice struct {
	docs []Document
	pos  int
}

// FromSlice wraps documents in a Source.
func FromSlice(docs []Document) *Slice {
	return &Slice{docs: docs}
}

func (s *Slice) Next(ctx context.Context) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	if s.pos >= len(s.docs) {
		return Document{}, io.EOF
	}
	doc := s.docs[s.pos]
	s.pos++
	return doc, nil
}

func (s *Slice) Close() error {
	return nil
}
