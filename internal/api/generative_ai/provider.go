package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/FACorreiaa/go-ireland-travel-planner/config"
)

// Provider is a single text generation backend. Exactly one is active per process.
type Provider interface {
	Name() string
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

const (
	ProviderGemini       = "gemini"
	ProviderOpenAI35     = "openai-3.5"
	ProviderOpenAI4      = "openai-4"
	ProviderOpenAI4oMini = "openai-4o-mini"
	ProviderGroq         = "groq"
	ProviderOllama       = "ollama"

	DefaultMaxTokens   = 1000
	DefaultTemperature = 0.7

	groqBaseURL   = "https://api.groq.com/openai/v1"
	ollamaBaseURL = "http://localhost:11434/v1"
)

var defaultModels = map[string]string{
	ProviderGemini:       "gemini-2.0-flash",
	ProviderOpenAI35:     "gpt-3.5-turbo",
	ProviderOpenAI4:      "gpt-4",
	ProviderOpenAI4oMini: "gpt-4o-mini",
	ProviderGroq:         "llama-3.3-70b-versatile",
	ProviderOllama:       "llama3.2",
}

// apiKeyEnv lists the provider specific variables consulted when llm.api_key is empty.
var apiKeyEnv = map[string]string{
	ProviderGemini:       "GOOGLE_GEMINI_API_KEY",
	ProviderOpenAI35:     "OPENAI_API_KEY",
	ProviderOpenAI4:      "OPENAI_API_KEY",
	ProviderOpenAI4oMini: "OPENAI_API_KEY",
	ProviderGroq:         "GROQ_API_KEY",
}

var (
	ErrUnknownProvider = errors.New("unknown llm provider")
	ErrMissingAPIKey   = errors.New("llm api key is not configured")
	ErrEmptyResponse   = errors.New("llm returned an empty response")
)

// ProviderError carries the HTTP status reported by a backend so the gateway can decide whether to retry.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s returned status %d: %v", e.Provider, e.StatusCode, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsTransient reports whether a failed call is worth retrying: rate limiting, server errors and timeouts.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.StatusCode == http.StatusTooManyRequests || providerErr.StatusCode >= http.StatusInternalServerError
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// NewProvider builds the backend named by cfg.Provider.
func NewProvider(ctx context.Context, cfg config.LLMConfig) (Provider, error) {
	name := cfg.Provider
	defaultModel, ok := defaultModels[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = DefaultTemperature
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(apiKeyEnv[name])
	}
	if apiKey == "" && name != ProviderOllama {
		return nil, fmt.Errorf("%w for provider %q", ErrMissingAPIKey, name)
	}

	switch name {
	case ProviderGemini:
		return NewGeminiProvider(ctx, apiKey, model, maxTokens, temperature)
	case ProviderGroq:
		return NewOpenAIProvider(name, apiKey, firstNonEmpty(cfg.BaseURL, groqBaseURL), model, maxTokens, temperature), nil
	case ProviderOllama:
		return NewOpenAIProvider(name, firstNonEmpty(apiKey, "ollama"), firstNonEmpty(cfg.BaseURL, ollamaBaseURL), model, maxTokens, temperature), nil
	default:
		return NewOpenAIProvider(name, apiKey, cfg.BaseURL, model, maxTokens, temperature), nil
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
