package sections

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dusk-indust/digest/internal/digest"
	"github.com/dusk-indust/digest/internal/llm"
)

const searchSystemPrompt = "You are a helpful assistant."

// SearchSpec describes one web-search-backed section.
type SearchSpec struct {
	Name    string
	Heading string
	Empty   string // shown when the answer yields no items
	Failure string // shown when the search fails
	Refs    RefStyle
	Prompt  func(date string) string
}

// Search is a section built from a web-search-augmented completion. It
// contains its own failures: on error it reports Success=false with its
// failure text instead of returning an error.
type Search struct {
	spec     SearchSpec
	searcher llm.Searcher
	now      Clock
	logger   *zap.Logger
}

// NewSearch creates a Search producer. A nil searcher yields the failure text.
func NewSearch(spec SearchSpec, searcher llm.Searcher, now Clock, logger *zap.Logger) *Search {
	return &Search{
		spec:     spec,
		searcher: searcher,
		now:      orNow(now),
		logger:   orNop(logger),
	}
}

// Fetch runs the search and formats the cited items.
func (s *Search) Fetch(ctx context.Context) (digest.SectionResult, error) {
	if s == nil {
		return digest.SectionResult{}, errors.New("search: section not configured")
	}

	content, err := s.fetch(ctx)
	if err != nil {
		s.logger.Error("section fetch failed", zap.String("section", s.spec.Name), zap.Error(err))
		return digest.SectionResult{
			Name:    s.spec.Name,
			Content: s.spec.Heading + "\n\n⚠️ " + s.spec.Failure,
			Success: false,
		}, nil
	}
	return digest.SectionResult{Name: s.spec.Name, Content: content, Success: true}, nil
}

func (s *Search) fetch(ctx context.Context) (string, error) {
	if s.searcher == nil {
		return "", errors.New("no search client configured")
	}

	answer, err := s.searcher.Search(ctx, searchSystemPrompt, s.spec.Prompt(promptDate(s.now())))
	if err != nil {
		return "", fmt.Errorf("%s: %w", s.spec.Name, err)
	}
	if answer == nil {
		return "", fmt.Errorf("%s: empty response", s.spec.Name)
	}
	if answer.Content == "" {
		return formatItems(s.spec.Heading, s.spec.Empty, nil), nil
	}

	items := resolveLinks(parseItems(answer.Content, s.spec.Refs), answer.Results)
	s.logger.Debug("search section parsed",
		zap.String("section", s.spec.Name),
		zap.Int("items", len(items)),
		zap.Int("results", len(answer.Results)),
	)
	return formatItems(s.spec.Heading, s.spec.Empty, items), nil
}

// AINewsSpec is the AI news section: three recent AI tooling stories.
var AINewsSpec = SearchSpec{
	Name:    NameAINews,
	Heading: "🤖 AI News",
	Empty:   "No AI news found today.",
	Failure: "AI news unavailable today",
	Refs:    RefSourceColon,
	Prompt: func(date string) string {
		return `Find 3 current AI news items from today or the last 24-48 hours. Prioritize AI tooling news (frameworks, libraries, developer tools, platforms). Ensure diversity in topics and sources.

For each news item:
1. Start with a bold headline using Markdown: **Headline Here**
2. Write 2-3 sentences explaining what happened and why it matters
3. End with ` + RefSourceColon.Example + ` where X is the reference number

Today's date is ` + date + `.

Format example:
**OpenAI Releases New SDK Version**
The new SDK includes improved error handling and better performance for streaming responses. Developers can now use async patterns more easily. [Source: ref_1]`
	},
}

// TalkingPiecesSpec is the discussion-prompt section: three pieces from
// philosophy, psychology, creativity or culture.
var TalkingPiecesSpec = SearchSpec{
	Name:    NameTalkingPieces,
	Heading: "💡 Talking Pieces",
	Empty:   "No talking pieces found today.",
	Failure: "Talking pieces unavailable today",
	Refs:    RefSourceLink,
	Prompt: func(date string) string {
		return `Find 3 thought-provoking talking pieces from philosophy, psychology, creativity, or culture. Choose topics that are interesting to discuss and explain accessibly in a Vox explainer style. Ensure diversity: each piece should come from a different domain.

For each piece:
1. Start with a bold title using Markdown: **Title Here**
2. Write 2-3 sentences as a teaser that explains the concept or poses a compelling question
3. End with ` + RefSourceLink.Example + ` where X is the reference number, linking to a relevant article or resource

Today's date is ` + date + `.

Format example:
**Why Boredom Is a Superpower**
Researchers are finding that boredom is not wasted time. It is when the mind wanders into its most creative states. [Source](ref_1)`
	},
}
