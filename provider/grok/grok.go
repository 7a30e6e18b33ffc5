// Package grok adapts the normalized provider.Request into the xAI API. The
// endpoint is OpenAI Chat Completions compatible, so the official OpenAI
// client is reused against the x.ai base URL.
package grok

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/stackfield/agentstudio/provider"
)

const defaultBaseURL = "https://api.x.ai/v1"

// Options configure the Grok adapter.
type Options struct {
	// BaseURL overrides the API endpoint (tests point this at a local server).
	BaseURL string
}

// Adapter implements provider.Adapter for the xAI backend.
type Adapter struct {
	opts Options
}

// Compile-time interface assertion.
var _ provider.Adapter = (*Adapter)(nil)

// New constructs a Grok adapter.
func New(optFns ...func(o *Options)) *Adapter {
	opts := Options{BaseURL: defaultBaseURL}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Adapter{opts: opts}
}

// Complete issues one blocking chat completion against the xAI endpoint and
// returns the first choice's message content.
func (a *Adapter) Complete(ctx context.Context, apiKey string, req provider.Request) (string, error) {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(a.opts.BaseURL),
	)

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
		return "", fmt.Errorf("xai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// Provider returns the backend tag this adapter serves.
func (a *Adapter) Provider() provider.Provider { return provider.Grok }
