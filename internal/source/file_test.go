package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/searchcore/invindex/pkg/errors"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing dataset: %v", err)
	}
	return path
}

func readAll(t *testing.T, src Source) []Document {
	t.Helper()
	var docs []Document
	for {
		doc, err := src.Next(context.Background())
		if errors.Is(err, io.EOF) {
			return docs
		}
		if err != nil {
			t.Fatalf("next error: %v", err)
		}
		docs = append(docs, doc)
	}
}

func TestFileSourceSingleDocument(t *testing.T) {
	path := writeDataset(t, "1337\tMerol   Lorem ipsum ist dalor\n")
	src, err := OpenFile(path, "utf-8")
	if err != nil {
		t.Fatalf("open error: %v", err)
	}
	defer src.Close()

	docs := readAll(t, src)
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs[0].ID != 1337 {
		t.Fatalf("document id = %d, want 1337", docs[0].ID)
	}
	if docs[0].Text != "Merol   Lorem ipsum ist dalor" {
		t.Fatalf("document text = %q", docs[0].Text)
	}
}

func TestFileSourceMultipleDocuments(t *testing.T) {
	path := writeDataset(t, "2019\ttitle Nothing\n1984\tConsensus 2 + 2 = 5\n")
	src, err := OpenFile(path, "utf-8")
	if err != nil {
		t.Fatalf("open error: %v", err)
	}
	defer src.Close()

	docs := readAll(t, src)
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].ID != 2019 || docs[0].Text != "title Nothing" {
		t.Fatalf("unexpected first document %+v", docs[0])
	}
	if docs[1].ID != 1984 || docs[1].Text != "Consensus 2 + 2 = 5" {
		t.Fatalf("unexpected second document %+v", docs[1])
	}
}

func TestFileSourceEmptyFile(t *testing.T) {
	path := writeDataset(t, "")
	src, err := OpenFile(path, "utf-8")
	if err != nil {
		t.Fatalf("open error: %v", err)
	}
	defer src.Close()

	if docs := readAll(t, src); len(docs) != 0 {
		t.Fatalf("expected no documents, got %d", len(docs))
	}
}

// A line without an id/text separator is a fatal parse error, not a
// skipped record.
func TestFileSourceMalformedLine(t *testing.T) {
	path := writeDataset(t, "1337Dog\tDog\n")
	src, err := OpenFile(path, "utf-8")
	if err != nil {
		t.Fatalf("open error: %v", err)
	}
	defer src.Close()

	_, err = src.Next(context.Background())
	if !errors.Is(err, apperrors.ErrParse) {
		t.Fatalf("got %v, want parse error", err)
	}
}

func TestFileSourceUnknownEncoding(t *testing.T) {
	path := writeDataset(t, "1 text\n")
	if _, err := OpenFile(path, "ebcdic"); !errors.Is(err, apperrors.ErrConfiguration) {
		t.Fatalf("got %v, want configuration error", err)
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Document
		wantErr bool
	}{
		{"tab separator", "12\tsome text", Document{ID: 12, Text: "some text"}, false},
		{"space separator", "12 some text", Document{ID: 12, Text: "some text"}, false},
		{"trailing whitespace stripped", "7 word  \t\r\n", Document{ID: 7, Text: "word"}, false},
		{"no separator", "1337Dog", Document{}, true},
		{"missing id", "\tonly text", Document{}, true},
		{"missing text", "42", Document{}, true},
		{"empty line", "", Document{}, true},
		{"id out of uint32 range", "4294967296 text", Document{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLine(tt.line)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrParse) {
					t.Fatalf("got %v, want parse error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestSliceSource(t *testing.T) {
	docs := []Document{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}}
	src := FromSlice(docs)

	got := readAll(t, src)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("unexpected documents %+v", got)
	}
	// exhausted source stays exhausted
	if _, err := src.Next(context.Background()); !errors.Is(err, io.EOF) {
		t.Fatal("expected io.EOF after exhaustion")
	}
}
