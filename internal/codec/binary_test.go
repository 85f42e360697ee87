package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/searchcore/invindex/internal/index"
	apperrors "github.com/searchcore/invindex/pkg/errors"
)

// Encoding an empty index writes exactly the 4-byte zero term count and
// nothing else.
func TestBinaryEncodeEmptyIsFourBytes(t *testing.T) {
	var buf bytes.Buffer
	n, err := (Binary{}).Encode(&buf, index.New())
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	if n != 4 {
		t.Fatalf("reported %d bytes written, want 4", n)
	}
	if got := buf.Bytes(); !bytes.Equal(got, []byte{0, 0, 0, 0}) {
		t.Fatalf("encoded % x, want 00 00 00 00", got)
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		ix   *index.Index
	}{
		{"empty", index.New()},
		{"two terms", index.FromMap(map[string][]uint32{"word": {10, 20, 30}, "kelvin": {20}}, "word", "kelvin")},
		{"unicode terms", index.FromMap(map[string][]uint32{"русский": {4}, "язык": {4, 7}}, "русский", "язык")},
		{"max id", index.FromMap(map[string][]uint32{"edge": {0, 4294967295}}, "edge")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			n, err := (Binary{}).Encode(&buf, tt.ix)
			if err != nil {
				t.Fatalf("encode error: %v", err)
			}
			if n != int64(buf.Len()) {
				t.Fatalf("reported %d bytes written, buffer has %d", n, buf.Len())
			}
			got, err := (Binary{}).Decode(&buf)
			if err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if !got.Equal(tt.ix) {
				t.Fatal("decoded index is not value-equal to the original")
			}
		})
	}
}

// The on-disk layout is a stable format: verify the exact bytes for a
// known index rather than only the round trip.
func TestBinaryLayout(t *testing.T) {
	ix := index.FromMap(map[string][]uint32{"ab": {7, 9}}, "ab")

	var buf bytes.Buffer
	if _, err := (Binary{}).Encode(&buf, ix); err != nil {
		t.Fatalf("encode error: %v", err)
	}

	want := new(bytes.Buffer)
	for _, v := range []uint32{1, 2} { // term_count, name_len
		binary.Write(want, binary.LittleEndian, v)
	}
	want.WriteString("ab")
	for _, v := range []uint32{2, 7, 9} { // doc_count, ids
		binary.Write(want, binary.LittleEndian, v)
	}
	if !bytes.Equal(buf.Bytes(), want.Bytes()) {
		t.Fatalf("encoded % x, want % x", buf.Bytes(), want.Bytes())
	}
}

func TestBinaryDecodeLayoutErrors(t *testing.T) {
	var valid bytes.Buffer
	ix := index.FromMap(map[string][]uint32{"word": {10, 20, 30}}, "word")
	if _, err := (Binary{}).Encode(&valid, ix); err != nil {
		t.Fatalf("encode error: %v", err)
	}
	full := valid.Bytes()

	tests := []struct {
		name  string
		input []byte
	}{
		{"empty input", nil},
		{"short header", []byte{1, 0}},
		{"truncated name", full[:6]},
		{"truncated doc count", full[:10]},
		{"truncated ids", full[:len(full)-2]},
		{"trailing garbage", append(append([]byte{}, full...), 0xff)},
		{"name length beyond input", []byte{1, 0, 0, 0, 0xff, 0xff, 0xff, 0xff, 'a'}},
		{"doc count beyond input", []byte{1, 0, 0, 0, 1, 0, 0, 0, 'a', 0xff, 0xff, 0xff, 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (Binary{}).Decode(bytes.NewReader(tt.input))
			if !errors.Is(err, apperrors.ErrLayout) {
				t.Fatalf("got %v, want layout error", err)
			}
		})
	}
}

// Layout failures stay inside the serialization taxonomy but remain
// distinct from the textual codec's syntax errors.
func TestBinaryLayoutErrorDistinctFromSyntax(t *testing.T) {
	_, err := (Binary{}).Decode(bytes.NewReader([]byte{1, 0}))
	if !apperrors.IsSerialization(err) {
		t.Fatalf("layout error should classify as serialization, got %v", err)
	}
	if errors.Is(err, apperrors.ErrSyntax) {
		t.Fatal("layout error must not match the syntax sentinel")
	}
}
