package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppInfo holds basic information about the application.
type AppInfo struct {
	Name        string `yaml:"name"`        // Application name
	Version     string `yaml:"version"`     // Application version
	Environment string `yaml:"environment"` // Runtime environment (e.g. "development", "production")
}

// LoggerConfig configures the structured logger.
type LoggerConfig struct {
	Level string `yaml:"level"` // Log level: "debug", "info", "warn", "error"
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Address        string  `yaml:"address"`        // Listen address (e.g. ":8000")
	RateLimitRPS   float64 `yaml:"rateLimitRPS"`   // Requests per second allowed per tenant, 0 disables limiting
	RateLimitBurst int     `yaml:"rateLimitBurst"` // Burst size per tenant
}

// OllamaConfig configures an Ollama-served model.
type OllamaConfig struct {
	Model   string `yaml:"model"`   // Model name (e.g. "gemma3", "bge-m3")
	BaseURL string `yaml:"baseURL"` // Ollama server URL, defaults to http://localhost:11434
}

// OpenAIConfig configures an OpenAI-compatible model.
type OpenAIConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

// GeminiConfig configures a Google Gemini model.
type GeminiConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

// LocalEmbeddingConfig configures the built-in hashed bag-of-words embedder.
type LocalEmbeddingConfig struct {
	Dimension int `yaml:"dimension"` // Vector dimension, defaults to 512
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	Provider  string               `yaml:"provider"`  // "ollama", "openai", "gemini" or "local"
	CacheSize int                  `yaml:"cacheSize"` // Query embeddings kept in the LRU cache, defaults to 256
	Ollama    OllamaConfig         `yaml:"ollama"`
	OpenAI    OpenAIConfig         `yaml:"openai"`
	Gemini    GeminiConfig         `yaml:"gemini"`
	Local     LocalEmbeddingConfig `yaml:"local"`
}

// LLMConfig selects and configures the answer-generation provider.
type LLMConfig struct {
	Provider string       `yaml:"provider"` // "ollama", "openai" or "gemini"
	Ollama   OllamaConfig `yaml:"ollama"`
	OpenAI   OpenAIConfig `yaml:"openai"`
	Gemini   GeminiConfig `yaml:"gemini"`
}

// MilvusConfig configures the Milvus vector store backend.
type MilvusConfig struct {
	Address    string `yaml:"address"`    // Milvus service address
	Collection string `yaml:"collection"` // Collection name holding document chunks
	Dimension  int    `yaml:"dimension"`  // Embedding dimension used when creating the collection
}

// VectorStoreConfig selects and configures the vector store backend.
type VectorStoreConfig struct {
	Provider string       `yaml:"provider"` // "memory" or "milvus"
	Milvus   MilvusConfig `yaml:"milvus"`
}

// SplitterConfig configures how documents are chunked before indexing.
type SplitterConfig struct {
	Kind         string `yaml:"kind"`         // "sentence" or "token"
	ChunkSize    int    `yaml:"chunkSize"`    // Sentences or tokens per chunk
	ChunkOverlap int    `yaml:"chunkOverlap"` // Overlapping sentences or tokens between chunks
}

// ChatConfig tunes the question-answering behaviour.
type ChatConfig struct {
	TopK            int    `yaml:"topK"`            // Fragments retrieved per query, defaults to 3
	ProviderTimeout string `yaml:"providerTimeout"` // Timeout for embedding/LLM calls (e.g. "60s")
}

// AppConfig is the root structure of the YAML configuration file.
type AppConfig struct {
	App         AppInfo           `yaml:"app"`
	Logger      LoggerConfig      `yaml:"logger"`
	Server      ServerConfig      `yaml:"server"`
	Embedding   EmbeddingConfig   `yaml:"embedding"`
	LLM         LLMConfig         `yaml:"llm"`
	VectorStore VectorStoreConfig `yaml:"vectorStore"`
	Splitter    SplitterConfig    `yaml:"splitter"`
	Chat        ChatConfig        `yaml:"chat"`
}

// LoadConfig reads and parses the YAML configuration file at the given path.
func LoadConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills in values that may be omitted from the config file.
func (c *AppConfig) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8000"
	}
	if c.Server.RateLimitRPS > 0 && c.Server.RateLimitBurst <= 0 {
		c.Server.RateLimitBurst = 20
	}
	if c.Embedding.CacheSize <= 0 {
		c.Embedding.CacheSize = 256
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "local"
	}
	if c.Embedding.Local.Dimension <= 0 {
		c.Embedding.Local.Dimension = 512
	}
	if c.VectorStore.Provider == "" {
		c.VectorStore.Provider = "memory"
	}
	if c.Splitter.Kind == "" {
		c.Splitter.Kind = "sentence"
	}
	if c.Splitter.ChunkSize <= 0 {
		c.Splitter.ChunkSize = 5
	}
	if c.Splitter.ChunkOverlap < 0 {
		c.Splitter.ChunkOverlap = 0
	}
	if c.Chat.TopK <= 0 {
		c.Chat.TopK = 3
	}
	if c.Chat.ProviderTimeout == "" {
		c.Chat.ProviderTimeout = "60s"
	}
}
