package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	googlegenai "google.golang.org/genai"
)

// ContentGenerator produces text for a prompt with a named model.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model, prompt string) (string, error)
}

// GeminiGenerator calls the Gemini API backend.
type GeminiGenerator struct {
	client *googlegenai.Client
}

// NewGeminiGenerator builds a client for the Gemini API. baseURL is only
// set when pointing at a proxy or a test server.
func NewGeminiGenerator(ctx context.Context, apiKey, baseURL string) (*GeminiGenerator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &googlegenai.ClientConfig{
		APIKey:  apiKey,
		Backend: googlegenai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = googlegenai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := googlegenai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiGenerator{client: client}, nil
}

func (g *GeminiGenerator) GenerateContent(ctx context.Context, model, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, googlegenai.Text(prompt), nil)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}
	return output, nil
}
