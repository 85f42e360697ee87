package index

import (
	"context"
	"testing"

	"github.com/searchcore/invindex/internal/source"
)

func buildFrom(t *testing.T, docs []source.Document) *Index {
	t.Helper()
	ix, err := Build(context.Background(), source.FromSlice(docs))
	if err != nil {
		t.Fatalf("build error: %v", err)
	}
	return ix
}

func TestBuildEmpty(t *testing.T) {
	ix := buildFrom(t, nil)
	if ix.Len() != 0 {
		t.Fatalf("empty input should produce zero terms, got %d", ix.Len())
	}
}

func TestBuildSingleDocument(t *testing.T) {
	ix := buildFrom(t, []source.Document{
		{ID: 10, Text: "Doctor Who\t\tJohn Wick was right"},
	})

	if ix.Len() != 6 {
		t.Fatalf("expected 6 terms, got %d", ix.Len())
	}
	for _, term := range ix.Terms() {
		ps := ix.Postings(term)
		if ps.Len() != 1 {
			t.Fatalf("term %q postings size = %d, want 1", term, ps.Len())
		}
		if !ps.Contains(10) {
			t.Fatalf("term %q should map to document 10", term)
		}
	}
}

func TestBuildCaseSensitive(t *testing.T) {
	ix := buildFrom(t, []source.Document{{ID: 10, Text: "salmon Salmon"}})

	if ix.Len() != 2 {
		t.Fatalf("expected 2 distinct terms, got %d", ix.Len())
	}
	if ix.Postings("salmon") == nil || ix.Postings("Salmon") == nil {
		t.Fatal(`"salmon" and "Salmon" should be distinct terms`)
	}
}

func TestBuildRepeatedTokensDoNotInflatePostings(t *testing.T) {
	ix := buildFrom(t, []source.Document{{ID: 12, Text: "A B C A"}})

	if ix.Len() != 3 {
		t.Fatalf("expected 3 terms, got %d", ix.Len())
	}
	if got := ix.Postings("A").Len(); got != 1 {
		t.Fatalf(`postings["A"] size = %d, want 1`, got)
	}
}

func TestBuildMultipleDocuments(t *testing.T) {
	ix := buildFrom(t, []source.Document{
		{ID: 12, Text: "A B C A"},
		{ID: 13, Text: "A B C D"},
		{ID: 14, Text: "B"},
	})

	if got := ix.Postings("A").Len(); got != 2 {
		t.Fatalf(`postings["A"] size = %d, want 2`, got)
	}
	if got := ix.Postings("B").Len(); got != 3 {
		t.Fatalf(`postings["B"] size = %d, want 3`, got)
	}
}
