package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Compile-time interface check.
var _ Completer = (*Claude)(nil)

// MessagesClient captures the subset of the Anthropic SDK client used here.
// It is satisfied by *sdk.MessageService.
type MessagesClient interface {
	New(ctx context.Context, body sdk.MessageNewParams, opts ...option.RequestOption) (*sdk.Message, error)
}

// Claude implements Completer on the Anthropic Messages API.
type Claude struct {
	msg       MessagesClient
	model     string
	maxTokens int64
}

// NewClaude builds a Completer from an Anthropic Messages client.
func NewClaude(msg MessagesClient, model string, maxTokens int64) (*Claude, error) {
	if msg == nil {
		return nil, errors.New("llm: anthropic client is required")
	}
	if model == "" {
		return nil, errors.New("llm: model identifier is required")
	}
	if maxTokens <= 0 {
		maxTokens = 512
	}
	return &Claude{msg: msg, model: model, maxTokens: maxTokens}, nil
}

// NewClaudeFromAPIKey constructs a Claude completer using the default
// Anthropic HTTP client.
func NewClaudeFromAPIKey(apiKey, model string, opts ...option.RequestOption) (*Claude, error) {
	if apiKey == "" {
		return nil, errors.New("llm: api key is required")
	}
	ac := sdk.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return NewClaude(&ac.Messages, model, 0)
}

// Complete sends one user message and returns the concatenated text blocks.
func (c *Claude) Complete(ctx context.Context, system, prompt string) (string, error) {
	params := sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	}
	if system != "" {
		params.System = []sdk.TextBlockParam{{Text: system}}
	}

	msg, err := c.msg.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("llm: anthropic messages.new: %w", err)
	}
	if msg == nil {
		return "", errors.New("llm: anthropic response message is nil")
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.New("llm: anthropic response has no text")
	}
	return text, nil
}
