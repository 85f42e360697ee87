// Package searcher orchestrates the query pipeline: codec load →
// AND-intersection queries → rendered result lines, with an optional
// Redis-backed result cache.
package searcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/searchcore/invindex/internal/codec"
	"github.com/searchcore/invindex/internal/index"
	"github.com/searchcore/invindex/pkg/metrics"
)

// Searcher answers multi-term AND-queries against a loaded index.
type Searcher struct {
	ix          *index.Index
	cache       *QueryCache
	metrics     *metrics.Metrics
	logger      *slog.Logger
	fingerprint string
}

// Open loads the index at path using the named storage policy. cache may
// be nil, in which case every query is computed directly.
func Open(path, policy string, m *metrics.Metrics, cache *QueryCache) (*Searcher, error) {
	c, err := codec.New(policy)
	if err != nil {
		return nil, err
	}
	ix, err := codec.Load(path, c)
	if err != nil {
		return nil, err
	}
	return &Searcher{
		ix:          ix,
		cache:       cache,
		metrics:     m,
		logger:      slog.Default().With("component", "searcher"),
		fingerprint: fileFingerprint(path),
	}, nil
}

// FromIndex wraps an already built index, bypassing storage.
func FromIndex(ix *index.Index, m *metrics.Metrics) *Searcher {
	return &Searcher{
		ix:      ix,
		metrics: m,
		logger:  slog.Default().With("component", "searcher"),
	}
}

// Execute runs one query and returns matching document ids in ascending
// order. Cache failures degrade to recomputation, never to an error.
func (s *Searcher) Execute(ctx context.Context, terms []string) []uint32 {
	start := time.Now()
	var ids []uint32
	if s.cache != nil {
		ids = s.cache.GetOrCompute(ctx, s.cacheKey(terms), func() []uint32 {
			return s.ix.Query(terms)
		})
	} else {
		ids = s.ix.Query(terms)
	}

	resultType := "hit"
	if len(ids) == 0 {
		resultType = "zero_result"
	}
	s.metrics.QueriesTotal.WithLabelValues(resultType).Inc()
	s.metrics.QueryLatency.Observe(time.Since(start).Seconds())
	s.metrics.QueryResultsCount.Observe(float64(len(ids)))
	s.logger.Debug("query executed", "terms", terms, "results", len(ids))
	return ids
}

// Run executes every query in order and writes one rendered line per
// query to w. A query with no results produces an empty line, never an
// omitted one.
func (s *Searcher) Run(ctx context.Context, queries [][]string, w io.Writer) error {
	for _, terms := range queries {
		ids := s.Execute(ctx, terms)
		if _, err := fmt.Fprintln(w, Render(ids)); err != nil {
			return fmt.Errorf("writing query result: %w", err)
		}
	}
	return nil
}

// Render formats document ids as a comma-joined list.
func Render(ids []uint32) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}

// cacheKey ties cached results to this exact index file, so a rebuilt
// index never serves stale entries. Term order and duplicates do not
// change the result, so the key normalizes both away.
func (s *Searcher) cacheKey(terms []string) string {
	seen := make(map[string]struct{}, len(terms))
	unique := make([]string, 0, len(terms))
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		unique = append(unique, t)
	}
	sort.Strings(unique)
	return s.fingerprint + "|" + strings.Join(unique, "\x00")
}

func fileFingerprint(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return path
	}
	return fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano())
}
