// Package llm wraps the text-generation services the digest sections use:
// Claude for short prose (clothing advice, historical facts) and z.ai's
// OpenAI-compatible endpoint for web-search-augmented answers.
package llm

import "context"

// Completer produces a single text answer for a prompt.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// SearchResult is one web search hit returned alongside a search-augmented
// completion. Refer is the reference tag ("ref_1") the model cites.
type SearchResult struct {
	Refer   string `json:"refer"`
	Title   string `json:"title"`
	Link    string `json:"link"`
	Media   string `json:"media"`
	Content string `json:"content"`
}

// SearchAnswer is a completion plus the search results it may cite.
type SearchAnswer struct {
	Content string
	Results []SearchResult
}

// Searcher produces web-search-augmented answers.
type Searcher interface {
	Search(ctx context.Context, system, prompt string) (*SearchAnswer, error)
}
