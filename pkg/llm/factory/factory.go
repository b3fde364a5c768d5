package factory

import (
	"fmt"

	"buddyai-be/pkg/llm"
	"buddyai-be/pkg/llm/gemini"
	"buddyai-be/pkg/llm/ollama"
	"buddyai-be/pkg/llm/openai"
)

type Config struct {
	Provider string // "gemini", "openai" or "ollama"
	Model    string
	APIKey   string
	BaseURL  string
}

func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "", "gemini":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return gemini.NewGeminiProvider(cfg.BaseURL, cfg.APIKey, cfg.Model), nil
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewOpenAIProvider(cfg.BaseURL, cfg.APIKey, cfg.Model), nil
	case "ollama":
		return ollama.NewOllamaProvider(cfg.BaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
