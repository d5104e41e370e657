package mcptools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/digest/internal/digest"
)

// Composer is the subset of *digest.Runner the MCP tools need.
type Composer interface {
	Sections() []string
	Compose(ctx context.Context) (digest.Document, []string)
}

// DigestService handles MCP tool calls. It never delivers the digest.
type DigestService struct {
	composer Composer
}

// NewDigestService creates a DigestService around composer.
func NewDigestService(composer Composer) *DigestService {
	return &DigestService{composer: composer}
}

// PreviewDigest composes today's digest and returns the rendered chunks.
func (s *DigestService) PreviewDigest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PreviewDigestInput,
) (*mcp.CallToolResult, PreviewDigestOutput, error) {
	if input.ChunkLimit < 0 {
		return nil, PreviewDigestOutput{}, fmt.Errorf("invalid chunk limit: %d", input.ChunkLimit)
	}

	doc, chunks := s.composer.Compose(ctx)
	if input.ChunkLimit > 0 {
		chunks = digest.Render(doc, input.ChunkLimit)
	}

	statuses := make([]SectionStatus, len(doc.Outcomes))
	for i, o := range doc.Outcomes {
		st := SectionStatus{Name: o.Name, Status: string(o.Status())}
		if o.Failed() {
			st.Message = o.Err.Error()
		}
		statuses[i] = st
	}

	return nil, PreviewDigestOutput{Chunks: chunks, Sections: statuses}, nil
}

// ListSections reports the configured sections in digest order.
func (s *DigestService) ListSections(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListSectionsInput,
) (*mcp.CallToolResult, ListSectionsOutput, error) {
	return nil, ListSectionsOutput{Sections: s.composer.Sections()}, nil
}
