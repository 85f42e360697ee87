package codec

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"

	"github.com/searchcore/invindex/internal/index"
	apperrors "github.com/searchcore/invindex/pkg/errors"
)

// Binary is the compact binary codec ("struct" storage policy). The
// layout is little-endian and self-describing, with no delimiter
// scanning:
//
//	file       := term_count:uint32 term_entry*
//	term_entry := name_len:uint32 name_bytes doc_count:uint32 doc_id:uint32*
//
// An empty index encodes to exactly the 4-byte zero term count.
type Binary struct{}

func (Binary) Name() string { return "struct" }

const maxUint32 = uint64(^uint32(0))

// Encode writes the index and returns the total byte count, which is
// always 4 + Σ(4 + len(name) + 4 + 4·doc_count) over all terms.
func (Binary) Encode(w io.Writer, ix *index.Index) (int64, error) {
	terms := ix.Terms()
	if uint64(len(terms)) > maxUint32 {
		return 0, apperrors.Serialization(apperrors.ErrLayout, "term count %d exceeds uint32", len(terms))
	}

	bw := bufio.NewWriter(w)
	var written int64

	writeU32 := func(v uint32) error {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		n, err := bw.Write(b[:])
		written += int64(n)
		return err
	}

	if err := writeU32(uint32(len(terms))); err != nil {
		return written, err
	}
	for _, term := range terms {
		name := []byte(term)
		if uint64(len(name)) > maxUint32 {
			return written, apperrors.Serialization(apperrors.ErrLayout, "term name of %d bytes exceeds uint32", len(name))
		}
		ids := ix.Postings(term).IDs()
		if uint64(len(ids)) > maxUint32 {
			return written, apperrors.Serialization(apperrors.ErrLayout, "postings set of %d ids exceeds uint32", len(ids))
		}
		if err := writeU32(uint32(len(name))); err != nil {
			return written, err
		}
		n, err := bw.Write(name)
		written += int64(n)
		if err != nil {
			return written, err
		}
		if err := writeU32(uint32(len(ids))); err != nil {
			return written, err
		}
		for _, id := range ids {
			if err := writeU32(id); err != nil {
				return written, err
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return written, err
	}
	return written, nil
}

// Decode reads the layout back, validating every declared length against
// the bytes actually present. Truncated input and trailing garbage both
// fail with ErrLayout.
func (Binary) Decode(r io.Reader) (*index.Index, error) {
	br := bufio.NewReader(r)

	readU32 := func(what string) (uint32, error) {
		var b [4]byte
		if _, err := io.ReadFull(br, b[:]); err != nil {
			return 0, apperrors.Serialization(apperrors.ErrLayout, "truncated %s", what)
		}
		return binary.LittleEndian.Uint32(b[:]), nil
	}

	termCount, err := readU32("term count")
	if err != nil {
		return nil, err
	}

	ix := index.New()
	for i := uint32(0); i < termCount; i++ {
		nameLen, err := readU32("term name length")
		if err != nil {
			return nil, err
		}
		// CopyN grows the buffer only as bytes arrive, so a lying
		// name_len fails without a giant upfront allocation.
		var name bytes.Buffer
		if _, err := io.CopyN(&name, br, int64(nameLen)); err != nil {
			return nil, apperrors.Serialization(apperrors.ErrLayout, "term name shorter than declared %d bytes", nameLen)
		}
		term := name.String()
		docCount, err := readU32("document count")
		if err != nil {
			return nil, err
		}
		ix.Touch(term)
		for j := uint32(0); j < docCount; j++ {
			id, err := readU32("document id")
			if err != nil {
				return nil, err
			}
			ix.Add(term, id)
		}
	}
	if _, err := br.ReadByte(); err != io.EOF {
		return nil, apperrors.Serialization(apperrors.ErrLayout, "trailing data after %d terms", termCount)
	}
	return ix, nil
}
