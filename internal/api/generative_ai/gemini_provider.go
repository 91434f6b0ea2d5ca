package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

var _ Provider = (*GeminiProvider)(nil)

type GeminiProvider struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
}

func NewGeminiProvider(ctx context.Context, apiKey, model string, maxTokens int, temperature float32) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiProvider{
		client:      client,
		model:       model,
		maxTokens:   int32(maxTokens),
		temperature: temperature,
	}, nil
}

func (p *GeminiProvider) Name() string { return ProviderGemini }

func (p *GeminiProvider) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](p.temperature),
		MaxOutputTokens:   p.maxTokens,
	}
	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(userPrompt), config)
	if err != nil {
		return "", wrapGeminiError(err)
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func wrapGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{Provider: ProviderGemini, StatusCode: apiErr.Code, Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &ProviderError{Provider: ProviderGemini, StatusCode: apiErrPtr.Code, Err: err}
	}
	return err
}
