package digest

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/dusk-indust/digest/internal/digest"

// Aggregator runs section producers in parallel and collects every outcome.
// Unlike a plain errgroup fan-out, a failing producer never cancels its
// siblings: each goroutine records its own result or error and reports nil
// to the group.
type Aggregator struct {
	logger     *zap.Logger
	tracer     trace.Tracer
	onProgress func(ProgressEvent)
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithLogger sets the logger used for per-section outcomes.
func WithLogger(l *zap.Logger) AggregatorOption {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithTracer replaces the OpenTelemetry tracer.
func WithTracer(t trace.Tracer) AggregatorOption {
	return func(a *Aggregator) {
		if t != nil {
			a.tracer = t
		}
	}
}

// WithProgress registers a progress callback. It is called synchronously
// from each producer goroutine and must be safe for concurrent use.
func WithProgress(fn func(ProgressEvent)) AggregatorOption {
	return func(a *Aggregator) {
		a.onProgress = fn
	}
}

// NewAggregator creates an Aggregator.
func NewAggregator(opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		logger: zap.NewNop(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate invokes every producer concurrently and waits for all of them to
// settle. Block i of the returned document is producer i's content, or the
// placeholder for its name if it returned an error or panicked. No timeout
// is applied here; a producer that never returns blocks the aggregation.
func (a *Aggregator) Aggregate(ctx context.Context, producers []NamedProducer) Document {
	outcomes := make([]Outcome, len(producers))
	var g errgroup.Group

	for i, p := range producers {
		a.emit(ProgressEvent{Section: p.Name, Status: ProgressPending})

		g.Go(func() error {
			outcomes[i] = a.settle(ctx, p)
			return nil
		})
	}

	_ = g.Wait()

	doc := Document{
		Blocks:   make([]string, len(outcomes)),
		Outcomes: outcomes,
	}
	for i, o := range outcomes {
		if o.Failed() {
			doc.Blocks[i] = Placeholder(o.Name)
			continue
		}
		doc.Blocks[i] = o.Result.Content
	}
	return doc
}

// settle runs one producer, converting a panic into an error outcome.
func (a *Aggregator) settle(ctx context.Context, p NamedProducer) (out Outcome) {
	ctx, span := a.tracer.Start(ctx, "digest.section",
		trace.WithAttributes(attribute.String("digest.section", p.Name)))
	defer span.End()

	out.Name = p.Name
	a.emit(ProgressEvent{Section: p.Name, Status: ProgressWorking})

	defer func() {
		if r := recover(); r != nil {
			out.Err = fmt.Errorf("digest: section %q panicked: %v", p.Name, r)
		}
		a.record(span, out)
	}()

	if p.Fetch == nil {
		out.Err = fmt.Errorf("digest: section %q has no producer", p.Name)
		return out
	}

	res, err := p.Fetch(ctx)
	if err != nil {
		out.Err = fmt.Errorf("digest: section %q: %w", p.Name, err)
		return out
	}
	out.Result = res
	return out
}

func (a *Aggregator) record(span trace.Span, out Outcome) {
	switch {
	case out.Failed():
		span.RecordError(out.Err)
		span.SetStatus(codes.Error, "section failed")
		a.logger.Warn("section failed", zap.String("section", out.Name), zap.Error(out.Err))
		a.emit(ProgressEvent{Section: out.Name, Status: ProgressFailed, Message: out.Err.Error()})
	case !out.Result.Success:
		span.SetAttributes(attribute.Bool("digest.section.success", false))
		a.logger.Info("section degraded", zap.String("section", out.Name))
		a.emit(ProgressEvent{Section: out.Name, Status: ProgressDegraded})
	default:
		span.SetAttributes(attribute.Bool("digest.section.success", true))
		a.logger.Debug("section complete", zap.String("section", out.Name))
		a.emit(ProgressEvent{Section: out.Name, Status: ProgressComplete})
	}
}

// emit sends a progress event if a callback is registered.
func (a *Aggregator) emit(ev ProgressEvent) {
	if a.onProgress != nil {
		a.onProgress(ev)
	}
}
