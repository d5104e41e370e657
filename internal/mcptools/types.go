package mcptools

// --- MCP tool types for the digest server mode (serve-mcp) ---
// These tools let an MCP client preview today's digest without sending it.

// PreviewDigestInput is the input for the preview_digest MCP tool.
type PreviewDigestInput struct {
	ChunkLimit int `json:"chunkLimit,omitempty" jsonschema:"maximum characters per chunk (default: the configured limit)"`
}

// PreviewDigestOutput is the result of the preview_digest MCP tool.
type PreviewDigestOutput struct {
	Chunks   []string        `json:"chunks"`
	Sections []SectionStatus `json:"sections"`
}

// SectionStatus summarizes one section's outcome.
type SectionStatus struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // complete, degraded or failed
	Message string `json:"message,omitempty"`
}

// ListSectionsInput is the input for the list_sections MCP tool.
type ListSectionsInput struct{}

// ListSectionsOutput is the result of the list_sections MCP tool.
type ListSectionsOutput struct {
	Sections []string `json:"sections"`
}
