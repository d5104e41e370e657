package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	chunkHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("12"))
	chunkFooterStyle = lipgloss.NewStyle().
				Faint(true)
)

// printChunks writes the rendered digest to out, one framed chunk at a time.
func printChunks(out io.Writer, chunks []string) {
	for i, chunk := range chunks {
		header := fmt.Sprintf("=== DAILY DIGEST (%d/%d) ===", i+1, len(chunks))
		fmt.Fprintln(out, chunkHeaderStyle.Render(header))
		fmt.Fprintln(out, chunk)
		fmt.Fprintln(out, chunkFooterStyle.Render("=== END DIGEST ==="))
	}
}
