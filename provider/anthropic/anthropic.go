// Package anthropic adapts the normalized provider.Request into the Anthropic
// Messages API using the official client. The system prompt travels as a
// top-level system block; the user prompt as a single user message.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stackfield/agentstudio/provider"
)

// Adapter implements provider.Adapter for the Anthropic backend.
type Adapter struct {
	clientOpts []option.RequestOption
}

// Compile-time interface assertion.
var _ provider.Adapter = (*Adapter)(nil)

// New constructs an Anthropic adapter. Extra request options apply to every call.
func New(clientOpts ...option.RequestOption) *Adapter {
	return &Adapter{clientOpts: clientOpts}
}

// Complete issues one blocking Messages call and returns the concatenated
// text blocks of the response.
func (a *Adapter) Complete(ctx context.Context, apiKey string, req provider.Request) (string, error) {
	opts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, a.clientOpts...)
	client := anthropic.NewClient(opts...)

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   int64(req.MaxTokens),
		Temperature: anthropic.Float(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserPrompt)),
		},
	}
	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemPrompt}}
	}

	resp, err := client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic api error: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text content returned")
	}
	return sb.String(), nil
}

// Provider returns the backend tag this adapter serves.
func (a *Adapter) Provider() provider.Provider { return provider.Anthropic }
