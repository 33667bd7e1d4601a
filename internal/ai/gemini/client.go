package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultModel = "gemini-2.5-flash"

	jsonMIMEType = "application/json"
)

// Generator wraps the Google GenAI client for single-shot JSON prompts.
type Generator struct {
	client      *genai.Client
	modelName   string
	temperature float32
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string, temperature float32) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Generator{client: client, modelName: model, temperature: temperature}, nil
}

// GenerateContent sends the prompt with the given system instruction and
// returns the concatenated text of the response.
func (g *Generator) GenerateContent(ctx context.Context, instruction, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), g.config(instruction))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	output := responseText(resp)
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

func (g *Generator) config(instruction string) *genai.GenerateContentConfig {
	temperature := g.temperature
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: jsonMIMEType,
		Temperature:      &temperature,
	}

	if instruction = strings.TrimSpace(instruction); instruction != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: instruction}},
		}
	}
	return cfg
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
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

	return strings.TrimSpace(builder.String())
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}
