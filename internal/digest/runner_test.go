package digest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_RunDeliversRenderedChunks(t *testing.T) {
	sink := &recordingSink{}
	r := NewRunner(RunnerConfig{
		Producers: []NamedProducer{
			okProducer("Calendar", "**Standup** at 9"),
			failProducer("Weather"),
		},
		Sink: sink,
	})

	require.NoError(t, r.Run(context.Background()))
	require.Len(t, sink.sent, 1)
	assert.Equal(t, "<b>Standup</b> at 9\n\n⚠️ Weather unavailable today", sink.sent[0])
}

func TestRunner_RunSplitsLongDigests(t *testing.T) {
	sink := &recordingSink{}
	r := NewRunner(RunnerConfig{
		Producers: []NamedProducer{
			okProducer("A", strings.Repeat("a", 30)),
			okProducer("B", strings.Repeat("b", 30)),
		},
		Sink:       sink,
		ChunkLimit: 40,
	})

	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, []string{strings.Repeat("a", 30), strings.Repeat("b", 30)}, sink.sent)
}

func TestRunner_RunPropagatesDeliveryFailure(t *testing.T) {
	sink := &recordingSink{failAt: 1}
	r := NewRunner(RunnerConfig{
		Producers: []NamedProducer{okProducer("A", "a")},
		Sink:      sink,
	})

	err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliver chunk 1 of 1")
}

func TestRunner_RunWithoutSink(t *testing.T) {
	r := NewRunner(RunnerConfig{Producers: []NamedProducer{okProducer("A", "a")}})
	require.Error(t, r.Run(context.Background()))
}

func TestRunner_ComposeAndSections(t *testing.T) {
	r := NewRunner(RunnerConfig{
		Producers: []NamedProducer{okProducer("A", "a"), failProducer("B")},
	})

	assert.Equal(t, []string{"A", "B"}, r.Sections())

	doc, chunks := r.Compose(context.Background())
	assert.Equal(t, []string{"a", "⚠️ B unavailable today"}, doc.Blocks)
	assert.Equal(t, []string{"a\n\n⚠️ B unavailable today"}, chunks)
}
