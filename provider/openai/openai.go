// Package openai adapts the normalized provider.Request into the OpenAI Chat
// Completions API using the official client. The system prompt and user
// prompt travel as message-role pairs.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/stackfield/agentstudio/provider"
)

// Adapter implements provider.Adapter for the OpenAI backend.
type Adapter struct {
	clientOpts []option.RequestOption
}

// Compile-time interface assertion.
var _ provider.Adapter = (*Adapter)(nil)

// New constructs an OpenAI adapter. Extra request options (custom base URL,
// HTTP client, middlewares) apply to every call.
func New(clientOpts ...option.RequestOption) *Adapter {
	return &Adapter{clientOpts: clientOpts}
}

// Complete issues one blocking chat completion and returns the first choice's
// message content.
func (a *Adapter) Complete(ctx context.Context, apiKey string, req provider.Request) (string, error) {
	opts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, a.clientOpts...)
	client := openai.NewClient(opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserPrompt),
		},
		MaxTokens:   openai.Int(int64(req.MaxTokens)),
		Temperature: openai.Float(req.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// Provider returns the backend tag this adapter serves.
func (a *Adapter) Provider() provider.Provider { return provider.OpenAI }
