package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Compile-time interface check.
var _ Searcher = (*ZAI)(nil)

// z.ai endpoints. The paid endpoint returns web search results with the
// completion; the coding endpoint accepts the tool but may omit them.
const (
	ZAICodingBaseURL = "https://api.z.ai/api/coding/paas/v4"
	ZAIPaidBaseURL   = "https://api.z.ai/api/paas/v4"
)

// webSearchTool enables z.ai's built-in web search. It is not part of the
// OpenAI tool schema, so it is injected into the request body directly.
var webSearchTool = []map[string]any{
	{
		"type": "web_search",
		"web_search": map[string]any{
			"enable":        true,
			"search_result": true,
		},
	},
}

// ChatClient captures the subset of the openai-go client used here. It is
// satisfied by *openai.ChatCompletionService.
type ChatClient interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// ZAI implements Searcher on z.ai's OpenAI-compatible chat completions.
type ZAI struct {
	chat  ChatClient
	model string
}

// NewZAI builds a Searcher from a chat completions client.
func NewZAI(chat ChatClient, model string) (*ZAI, error) {
	if chat == nil {
		return nil, errors.New("llm: chat client is required")
	}
	if model == "" {
		return nil, errors.New("llm: model identifier is required")
	}
	return &ZAI{chat: chat, model: model}, nil
}

// NewZAIFromAPIKey constructs a Searcher against baseURL.
func NewZAIFromAPIKey(apiKey, baseURL, model string, opts ...option.RequestOption) (*ZAI, error) {
	if apiKey == "" {
		return nil, errors.New("llm: api key is required")
	}
	base := []option.RequestOption{option.WithAPIKey(apiKey), option.WithBaseURL(baseURL)}
	client := openai.NewClient(append(base, opts...)...)
	return NewZAI(&client.Chat.Completions, model)
}

// Search runs a completion with web search enabled and returns the answer
// text together with any search results the response carried.
func (z *ZAI) Search(ctx context.Context, system, prompt string) (*SearchAnswer, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(prompt))

	resp, err := z.chat.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(z.model),
		Messages: messages,
	}, option.WithJSONSet("tools", webSearchTool))
	if err != nil {
		return nil, fmt.Errorf("llm: z.ai chat completion: %w", err)
	}

	answer := &SearchAnswer{}
	if len(resp.Choices) > 0 {
		answer.Content = resp.Choices[0].Message.Content
	}

	results, err := webSearchResults(resp.RawJSON())
	if err != nil {
		return nil, err
	}
	answer.Results = results
	return answer, nil
}

// webSearchResults extracts the z.ai "web_search" extension field. A nil
// slice means the response carried no search results.
func webSearchResults(raw string) ([]SearchResult, error) {
	if raw == "" {
		return nil, nil
	}
	var ext struct {
		WebSearch []SearchResult `json:"web_search"`
	}
	if err := json.Unmarshal([]byte(raw), &ext); err != nil {
		return nil, fmt.Errorf("llm: decode web_search: %w", err)
	}
	return ext.WebSearch, nil
}
