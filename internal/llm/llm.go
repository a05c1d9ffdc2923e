package llm

import (
	"context"
	"fmt"

	"github.com/horo-ai/horo/internal/config"
	"github.com/horo-ai/horo/internal/rag/interfaces"
)

// NewClient is a factory that creates an answer-generation model from the
// config.
func NewClient(ctx context.Context, cfg config.LLMConfig) (interfaces.LLM, error) {
	switch cfg.Provider {
	case "ollama":
		return NewOllama(cfg.Ollama.Model, cfg.Ollama.BaseURL)
	case "openai":
		return NewOpenAI(cfg.OpenAI.Model, cfg.OpenAI.APIKey)
	case "gemini":
		return NewGemini(ctx, cfg.Gemini.Model, cfg.Gemini.APIKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
