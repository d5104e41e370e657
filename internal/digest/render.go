package digest

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultChunkLimit is Telegram's maximum message length.
const DefaultChunkLimit = 4096

var (
	htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	boldRe      = regexp.MustCompile(`\*\*(.+?)\*\*`)
	linkRe      = regexp.MustCompile(`\[([^\[\]\n]+?)\]\(([^()\s"]+?)\)`)
)

// ToHTML translates the digest markup into Telegram HTML. The raw text is
// escaped before any tags are introduced; unbalanced markup is left as
// escaped literal text.
func ToHTML(text string) string {
	out := htmlEscaper.Replace(text)
	out = boldRe.ReplaceAllString(out, "<b>$1</b>")
	out = linkRe.ReplaceAllString(out, `<a href="$2">$1</a>`)
	return out
}

// Chunk packs blocks greedily into chunks of at most limit characters,
// joining neighbours with BlockSeparator. Blocks are never split: a block
// that alone exceeds limit is emitted as its own oversized chunk.
func Chunk(blocks []string, limit int) []string {
	whole := strings.Join(blocks, BlockSeparator)
	if limit <= 0 || length(whole) <= limit {
		return []string{whole}
	}

	sepLen := length(BlockSeparator)
	var chunks []string
	var current strings.Builder
	currentLen := 0
	started := false

	for _, block := range blocks {
		blockLen := length(block)
		if started && currentLen+sepLen+blockLen > limit {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
			started = false
		}
		if started {
			current.WriteString(BlockSeparator)
			currentLen += sepLen
		}
		current.WriteString(block)
		currentLen += blockLen
		started = true
	}
	chunks = append(chunks, current.String())
	return chunks
}

// Render converts a composed document into channel-ready chunks. Each block
// is translated on its own so chunk boundaries stay on block boundaries.
func Render(doc Document, limit int) []string {
	blocks := make([]string, len(doc.Blocks))
	for i, b := range doc.Blocks {
		blocks[i] = ToHTML(b)
	}
	return Chunk(blocks, limit)
}

func length(s string) int {
	return utf8.RuneCountInString(s)
}
