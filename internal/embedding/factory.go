package embedding

import (
	"fmt"

	"github.com/horo-ai/horo/internal/config"
	"github.com/horo-ai/horo/internal/rag/interfaces"
)

// NewClient is a factory that creates an embedding model from the config.
func NewClient(cfg config.EmbeddingConfig) (interfaces.EmbeddingModel, error) {
	switch cfg.Provider {
	case "ollama":
		return NewOllamaModel(cfg.Ollama.Model, cfg.Ollama.BaseURL)
	case "openai":
		return NewOpenAIModel(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	case "gemini":
		return NewGoogleModel(cfg.Gemini.APIKey, cfg.Gemini.Model)
	case "local":
		return NewLocalModel(cfg.Local.Dimension), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}
