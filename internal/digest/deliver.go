package digest

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Deliver sends chunks one at a time, in order. It stops at the first failed
// send and returns its error; chunks already sent stay sent.
func Deliver(ctx context.Context, sink Sink, chunks []string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	for i, chunk := range chunks {
		if err := sink.Send(ctx, chunk); err != nil {
			return fmt.Errorf("digest: deliver chunk %d of %d: %w", i+1, len(chunks), err)
		}
		logger.Debug("chunk delivered",
			zap.Int("chunk", i+1),
			zap.Int("of", len(chunks)),
			zap.Int("chars", length(chunk)),
		)
	}
	return nil
}
