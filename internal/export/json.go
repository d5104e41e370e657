// Package export serializes a composed digest for inspection outside
// Telegram: dry runs with --json and archived previews.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dusk-indust/digest/internal/digest"
)

// DigestExport is the top-level JSON export structure.
type DigestExport struct {
	Date       string          `json:"date"`
	ExportedAt string          `json:"exportedAt"`
	Sections   []SectionExport `json:"sections"`
	Chunks     []ChunkExport   `json:"chunks"`
}

// SectionExport describes one section of the digest.
type SectionExport struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // complete, degraded or failed
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}

// ChunkExport is one channel-ready message.
type ChunkExport struct {
	Index  int    `json:"index"`
	Length int    `json:"length"` // in characters
	Text   string `json:"text"`
}

// ExportDigest builds a DigestExport from a composed document and its
// rendered chunks.
func ExportDigest(doc digest.Document, chunks []string, now time.Time) *DigestExport {
	export := &DigestExport{
		Date:       now.Format("2006-01-02"),
		ExportedAt: now.UTC().Format(time.RFC3339),
		Sections:   make([]SectionExport, 0, len(doc.Outcomes)),
		Chunks:     make([]ChunkExport, 0, len(chunks)),
	}

	for i, o := range doc.Outcomes {
		s := SectionExport{
			Name:   o.Name,
			Status: string(o.Status()),
		}
		if i < len(doc.Blocks) {
			s.Content = doc.Blocks[i]
		}
		if o.Err != nil {
			s.Error = o.Err.Error()
		}
		export.Sections = append(export.Sections, s)
	}

	for i, c := range chunks {
		export.Chunks = append(export.Chunks, ChunkExport{
			Index:  i + 1,
			Length: len([]rune(c)),
			Text:   c,
		})
	}

	return export
}

// WriteJSON writes the export as indented JSON.
func WriteJSON(w io.Writer, e *DigestExport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("export: encode digest: %w", err)
	}
	return nil
}
