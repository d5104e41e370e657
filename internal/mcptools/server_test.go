package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/digest/internal/digest"
)

func testRunner() *digest.Runner {
	return digest.NewRunner(digest.RunnerConfig{
		Producers: []digest.NamedProducer{
			{Name: "Calendar", Fetch: func(context.Context) (digest.SectionResult, error) {
				return digest.SectionResult{Name: "Calendar", Content: "📅 Calendar\n\n**Standup**", Success: true}, nil
			}},
			{Name: "Weather", Fetch: func(context.Context) (digest.SectionResult, error) {
				return digest.SectionResult{}, errors.New("HTTP 503")
			}},
			{Name: "AI News", Fetch: func(context.Context) (digest.SectionResult, error) {
				return digest.SectionResult{Name: "AI News", Content: "🤖 AI News\n\n⚠️ AI news unavailable today"}, nil
			}},
		},
	})
}

// setupServerClient wires an MCP server and client together using in-memory
// transports.
func setupServerClient(t *testing.T) *mcp.ClientSession {
	t.Helper()

	server := NewDigestMCPServer(testRunner(), "test")
	st, ct := mcp.NewInMemoryTransports()

	ctx := context.Background()
	_, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		session.Close()
	})
	return session
}

func TestMCPListTools(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		names[i] = tool.Name
	}
	sort.Strings(names)
	assert.Equal(t, []string{"list_sections", "preview_digest"}, names)

	info := session.InitializeResult().ServerInfo
	require.NotNil(t, info)
	assert.Equal(t, "digest", info.Name)
	assert.Equal(t, "test", info.Version)
}

func TestMCPPreviewDigest(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "preview_digest",
		Arguments: PreviewDigestInput{},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.NotNil(t, result.StructuredContent)

	raw, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)
	var out PreviewDigestOutput
	require.NoError(t, json.Unmarshal(raw, &out))

	require.Len(t, out.Chunks, 1)
	assert.True(t, strings.HasPrefix(out.Chunks[0], "📅 Calendar\n\n<b>Standup</b>"))
	assert.Contains(t, out.Chunks[0], "⚠️ Weather unavailable today")

	require.Len(t, out.Sections, 3)
	assert.Equal(t, "complete", out.Sections[0].Status)
	assert.Equal(t, "failed", out.Sections[1].Status)
	assert.Contains(t, out.Sections[1].Message, "HTTP 503")
	assert.Equal(t, "degraded", out.Sections[2].Status)
}

func TestDigestService_PreviewDigest_ChunkLimit(t *testing.T) {
	svc := NewDigestService(testRunner())

	_, out, err := svc.PreviewDigest(context.Background(), nil, PreviewDigestInput{ChunkLimit: 30})
	require.NoError(t, err)
	assert.Greater(t, len(out.Chunks), 1)

	_, _, err = svc.PreviewDigest(context.Background(), nil, PreviewDigestInput{ChunkLimit: -1})
	require.Error(t, err)
}

func TestDigestService_ListSections(t *testing.T) {
	svc := NewDigestService(testRunner())

	_, out, err := svc.ListSections(context.Background(), nil, ListSectionsInput{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Calendar", "Weather", "AI News"}, out.Sections)
}
