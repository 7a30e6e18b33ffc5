// Package gemini adapts the normalized provider.Request into the Google
// Generative Language REST API (generateContent). Gemini has no separate
// system role in this shape: the system prompt and user prompt are
// concatenated into a single user turn, with generation options carried in
// generationConfig.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stackfield/agentstudio/provider"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Options configure the Gemini adapter.
type Options struct {
	// BaseURL overrides the API endpoint (tests point this at a local server).
	BaseURL string
	// Timeout bounds each blocking call. Provider-side limits still apply.
	Timeout time.Duration
}

// Adapter implements provider.Adapter for the Gemini backend.
type Adapter struct {
	client *resty.Client
}

// Compile-time interface assertion.
var _ provider.Adapter = (*Adapter)(nil)

// New constructs a Gemini adapter.
func New(optFns ...func(o *Options)) *Adapter {
	opts := Options{BaseURL: defaultBaseURL, Timeout: 120 * time.Second}
	for _, fn := range optFns {
		fn(&opts)
	}
	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetHeader("Content-Type", "application/json")
	return &Adapter{client: client}
}

// Wire types for the generateContent call. Only the fields this adapter
// reads/writes are modeled.

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Complete issues one blocking generateContent call and returns the first
// candidate's concatenated text parts.
func (a *Adapter) Complete(ctx context.Context, apiKey string, req provider.Request) (string, error) {
	prompt := strings.TrimSpace(req.SystemPrompt)
	if prompt != "" {
		prompt += "\n\n"
	}
	prompt += strings.TrimSpace(req.UserPrompt)

	body := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			MaxOutputTokens: req.MaxTokens,
			Temperature:     req.Temperature,
		},
	}

	var out generateResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParam("key", apiKey).
		SetBody(body).
		SetResult(&out).
		SetError(&out).
		Post(fmt.Sprintf("/models/%s:generateContent", req.Model))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if resp.IsError() {
		if out.Error != nil && out.Error.Message != "" {
			return "", fmt.Errorf("gemini api error (%d): %s", resp.StatusCode(), out.Error.Message)
		}
		return "", fmt.Errorf("gemini api error (%d): %s", resp.StatusCode(), resp.String())
	}
	if len(out.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned")
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty candidate content")
	}
	return sb.String(), nil
}

// Provider returns the backend tag this adapter serves.
func (a *Adapter) Provider() provider.Provider { return provider.Gemini }
