package services

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiService sends one prompt to one named model. Fallback across models
// is the scoring client's concern, not the transport's.
type GeminiService interface {
	GenerateText(ctx context.Context, model, prompt string) (string, error)
}

type geminiService struct {
	client      *genai.Client
	temperature float32
}

func NewGeminiService(ctx context.Context, apiKey string, temperature float32) (GeminiService, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:      client,
		temperature: temperature,
	}, nil
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		// Salvage whatever the candidates carried before giving up.
		var textParts []string
		for _, candidate := range resp.Candidates {
			if candidate == nil || candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part == nil || strings.TrimSpace(part.Text) == "" {
					continue
				}
				textParts = append(textParts, part.Text)
			}
		}

		if len(textParts) > 0 {
			return strings.Join(textParts, "\n"), nil
		}

		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}
