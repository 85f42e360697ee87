package index

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/searchcore/invindex/internal/source"
)

// Build consumes a document stream once and constructs the inverted
// index. Text splits on whitespace; tokens are recorded verbatim, so
// "Salmon" and "salmon" stay distinct terms. Any source error aborts the
// build with no partial index.
func Build(ctx context.Context, src source.Source) (*Index, error) {
	ix := New()
	for {
		doc, err := src.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return ix, nil
			}
			return nil, err
		}
		for _, term := range strings.Fields(doc.Text) {
			ix.Add(term, doc.ID)
		}
	}
}
