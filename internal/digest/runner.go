package digest

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Runner wires the aggregator, renderer and delivery sink for one run.
type Runner struct {
	producers  []NamedProducer
	aggregator *Aggregator
	sink       Sink
	limit      int
	logger     *zap.Logger
}

// RunnerConfig holds the collaborators of a Runner. Sink may be nil for
// runs that only compose (dry run, previews).
type RunnerConfig struct {
	Producers  []NamedProducer
	Aggregator *Aggregator
	Sink       Sink
	ChunkLimit int
	Logger     *zap.Logger
}

// NewRunner creates a Runner, filling in defaults for the aggregator,
// chunk limit and logger.
func NewRunner(cfg RunnerConfig) *Runner {
	r := &Runner{
		producers:  cfg.Producers,
		aggregator: cfg.Aggregator,
		sink:       cfg.Sink,
		limit:      cfg.ChunkLimit,
		logger:     cfg.Logger,
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.aggregator == nil {
		r.aggregator = NewAggregator(WithLogger(r.logger))
	}
	if r.limit <= 0 {
		r.limit = DefaultChunkLimit
	}
	return r
}

// Sections returns the producer names in run order.
func (r *Runner) Sections() []string {
	names := make([]string, len(r.producers))
	for i, p := range r.producers {
		names[i] = p.Name
	}
	return names
}

// Compose aggregates every section and renders the channel-ready chunks.
func (r *Runner) Compose(ctx context.Context) (Document, []string) {
	doc := r.aggregator.Aggregate(ctx, r.producers)
	chunks := Render(doc, r.limit)
	r.logger.Info("digest composed",
		zap.Int("sections", len(doc.Blocks)),
		zap.Int("failed", countFailed(doc.Outcomes)),
		zap.Int("chunks", len(chunks)),
	)
	return doc, chunks
}

// Run composes the digest and delivers it through the sink.
func (r *Runner) Run(ctx context.Context) error {
	if r.sink == nil {
		return errors.New("digest: no delivery sink configured")
	}
	_, chunks := r.Compose(ctx)
	return Deliver(ctx, r.sink, chunks, r.logger)
}

func countFailed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Failed() {
			n++
		}
	}
	return n
}
