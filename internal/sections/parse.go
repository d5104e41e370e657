package sections

import (
	"regexp"
	"strings"

	"github.com/dusk-indust/digest/internal/llm"
)

var headlineRe = regexp.MustCompile(`^\*\*(.+?)\*\*(.*)$`)

// RefStyle describes how a model cites search results in its answer.
type RefStyle struct {
	// Pattern matches one citation; its first group is the reference number.
	Pattern *regexp.Regexp
	// Example is shown to the model in the prompt.
	Example string
}

var (
	// RefSourceColon matches "[Source: ref_3]".
	RefSourceColon = RefStyle{
		Pattern: regexp.MustCompile(`(?i)\s*\[Source:\s*ref_(\d+)\]`),
		Example: "[Source: ref_X]",
	}
	// RefSourceLink matches "[Source](ref_3)".
	RefSourceLink = RefStyle{
		Pattern: regexp.MustCompile(`(?i)\s*\[Source\]\(ref_(\d+)\)`),
		Example: "[Source](ref_X)",
	}
)

// Item is one headline with its body and optional citation.
type Item struct {
	Title string
	Body  string
	Ref   string // "ref_N", empty when uncited
	Link  string
}

// parseItems splits a model answer into bold-titled items. Lines before the
// first title are ignored; a citation anywhere in an item sets its Ref.
func parseItems(content string, style RefStyle) []Item {
	var items []Item
	var cur *Item

	appendBody := func(text string) {
		text = strings.TrimSpace(text)
		if text == "" || cur == nil {
			return
		}
		if cur.Body != "" {
			cur.Body += " "
		}
		cur.Body += text
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		if m := headlineRe.FindStringSubmatch(trimmed); m != nil {
			if cur != nil {
				items = append(items, *cur)
			}
			cur = &Item{Title: strings.TrimSpace(m[1])}
			rest := m[2]
			if ref := style.Pattern.FindStringSubmatch(rest); ref != nil {
				cur.Ref = "ref_" + ref[1]
			}
			appendBody(style.Pattern.ReplaceAllString(rest, ""))
			continue
		}

		if cur == nil {
			continue
		}
		if ref := style.Pattern.FindStringSubmatch(trimmed); ref != nil {
			cur.Ref = "ref_" + ref[1]
			trimmed = style.Pattern.ReplaceAllString(trimmed, "")
		}
		appendBody(trimmed)
	}

	if cur != nil {
		items = append(items, *cur)
	}
	return items
}

// resolveLinks maps citations to search result links. When the response
// carried search results, items whose citation cannot be resolved are
// dropped; without search results every item is kept unlinked.
func resolveLinks(items []Item, results []llm.SearchResult) []Item {
	if results == nil {
		return items
	}

	links := make(map[string]string, len(results))
	for _, r := range results {
		links[r.Refer] = r.Link
	}

	var out []Item
	for _, it := range items {
		link := links[it.Ref]
		if it.Ref == "" || link == "" {
			continue
		}
		it.Link = link
		out = append(out, it)
	}
	return out
}

// formatItems renders a heading followed by one paragraph per item.
func formatItems(heading, empty string, items []Item) string {
	if len(items) == 0 {
		return heading + "\n\n" + empty
	}

	lines := []string{heading, ""}
	for _, it := range items {
		lines = append(lines, "**"+it.Title+"**")
		if it.Body != "" {
			lines = append(lines, it.Body)
		}
		if it.Link != "" {
			lines = append(lines, "[Source]("+it.Link+")")
		}
		lines = append(lines, "")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
