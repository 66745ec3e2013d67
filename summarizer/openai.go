package summarizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAI completes prompts through the OpenAI chat API with JSON output enforced.
type OpenAI struct {
	llm llms.Model
}

func NewOpenAI(apiKey, model string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("openai: API key is required")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
		openai.WithResponseFormat(openai.ResponseFormatJSON),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create OpenAI client: %w", err)
	}
	return &OpenAI{llm: llm}, nil
}

func (o *OpenAI) Name() string { return "OpenAI" }

func (o *OpenAI) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := o.llm.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, system),
			llms.TextParts(llms.ChatMessageTypeHuman, prompt),
		},
		llms.WithTemperature(temperature),
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty response")
	}
	return resp.Choices[0].Content, nil
}
