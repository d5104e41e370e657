package sections

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dusk-indust/digest/internal/digest"
	"github.com/dusk-indust/digest/internal/llm"
)

const historySystemPrompt = "You are a concise historian. Reply with plain text and at most one **bold** phrase."

// History asks Claude for one notable event that happened on today's date.
type History struct {
	completer llm.Completer
	now       Clock
	logger    *zap.Logger
}

// NewHistory creates a History producer.
func NewHistory(completer llm.Completer, now Clock, logger *zap.Logger) *History {
	return &History{completer: completer, now: orNow(now), logger: orNop(logger)}
}

// Fetch returns the historical fact. Any failure is returned as an error.
func (h *History) Fetch(ctx context.Context) (digest.SectionResult, error) {
	if h == nil || h.completer == nil {
		return digest.SectionResult{}, errors.New("history: no completion client configured")
	}

	day := h.now().Format("January 2")
	prompt := fmt.Sprintf("Share one interesting historical event that happened on %s in any year. "+
		"Start with the year in bold, like **1969**, followed by two or three sentences on what happened "+
		"and why it still matters.", day)

	fact, err := h.completer.Complete(ctx, historySystemPrompt, prompt)
	if err != nil {
		return digest.SectionResult{}, fmt.Errorf("history: %w", err)
	}
	h.logger.Debug("history fact fetched", zap.String("day", day))

	return digest.SectionResult{
		Name:    NameHistory,
		Content: "📜 Today in History\n\n" + fact,
		Success: true,
	}, nil
}
