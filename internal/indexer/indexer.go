// Package indexer orchestrates the build pipeline: document source →
// index builder → storage codec dump.
package indexer

import (
	"context"
	"log/slog"
	"time"

	"github.com/searchcore/invindex/internal/codec"
	"github.com/searchcore/invindex/internal/index"
	"github.com/searchcore/invindex/internal/source"
	"github.com/searchcore/invindex/pkg/config"
	apperrors "github.com/searchcore/invindex/pkg/errors"
	"github.com/searchcore/invindex/pkg/metrics"
)

// Engine builds an inverted index from the configured document source
// and persists it through a storage codec.
type Engine struct {
	cfg     *config.Config
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New creates a build Engine.
func New(cfg *config.Config, m *metrics.Metrics) *Engine {
	return &Engine{
		cfg:     cfg,
		metrics: m,
		logger:  slog.Default().With("component", "indexer"),
	}
}

// Build reads every document from the source named by the configuration
// (datasetPath applies to the file source), builds the index, and dumps
// it to outputPath under the given storage policy. Any source parse
// failure or codec failure aborts the build; the output file is only
// ever replaced atomically on success.
func (e *Engine) Build(ctx context.Context, datasetPath, outputPath, policy string) error {
	c, err := codec.New(policy)
	if err != nil {
		return err
	}

	src, err := e.openSource(ctx, datasetPath)
	if err != nil {
		return err
	}
	defer src.Close()

	counted := &countingSource{src: src}
	start := time.Now()
	ix, err := index.Build(ctx, counted)
	if err != nil {
		return err
	}
	e.metrics.DocsIndexedTotal.Add(float64(counted.n))
	e.metrics.TermsIndexed.Set(float64(ix.Len()))

	written, err := codec.Dump(outputPath, c, ix)
	if err != nil {
		return err
	}
	e.metrics.IndexBytesWritten.WithLabelValues(c.Name()).Add(float64(written))

	e.logger.Info("index built",
		"documents", counted.n,
		"terms", ix.Len(),
		"policy", c.Name(),
		"bytes_written", written,
		"output", outputPath,
		"elapsed", time.Since(start),
	)
	return nil
}

func (e *Engine) openSource(ctx context.Context, datasetPath string) (source.Source, error) {
	switch e.cfg.Source.Kind {
	case "", "file":
		return source.OpenFile(datasetPath, e.cfg.Source.Encoding)
	case "postgres":
		return source.OpenPostgres(ctx, e.cfg.Source.Postgres)
	case "kafka":
		return source.OpenKafka(ctx, e.cfg.Source.Kafka)
	default:
		return nil, apperrors.Configuration("unknown source kind %q", e.cfg.Source.Kind)
	}
}

// countingSource counts documents as the builder consumes them.
type countingSource struct {
	src source.Source
	n   int
}

func (c *countingSource) Next(ctx context.Context) (source.Document, error) {
	doc, err := c.src.Next(ctx)
	if err == nil {
		c.n++
	}
	return doc, err
}

func (c *countingSource) Close() error {
	return c.src.Close()
}
