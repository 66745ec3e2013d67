package summarizer

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// Gemini completes prompts through the Gemini API with a JSON response MIME type.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create Gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Name() string { return "Gemini" }

func (g *Gemini) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr[float32](temperature),
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("empty response")
	}
	return text, nil
}
