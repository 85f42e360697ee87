package source

import (
	"context"

	"github.com/searchcore/invindex/pkg/config"
	"github.com/searchcore/invindex/pkg/kafka"
)

// OpenKafka drains the configured topic and returns the collected
// documents as a Source. Message values use the same `id<ws>text` line
// format as dataset files; a malformed value aborts the drain.
//
// The drain is bounded: it stops once no message arrives within the
// configured wait window, so a build over a quiet topic terminates.
func OpenKafka(ctx context.Context, cfg config.KafkaConfig) (*Slice, error) {
	reader := kafka.NewReader(cfg)
	defer reader.Close()

	var docs []Document
	err := reader.Drain(ctx, func(ctx context.Context, key, value []byte) error {
		doc, err := ParseLine(string(value))
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromSlice(docs), nil
}
