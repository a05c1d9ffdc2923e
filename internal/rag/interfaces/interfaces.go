package interfaces

import (
	"context"

	"github.com/horo-ai/horo/internal/rag/schema"
)

// Splitter is the interface for splitting a list of Documents into smaller chunks.
type Splitter interface {
	Split(ctx context.Context, docs []*schema.Document) ([]*schema.Document, error)
}

// DocStore is the interface for storing and retrieving document chunks by their ID.
// Implementations must keep tenants fully isolated from one another.
type DocStore interface {
	Add(ctx context.Context, tenantID string, docs map[string]*schema.Document) error
	Get(ctx context.Context, tenantID string, ids []string) (map[string]*schema.Document, error)
}

// VectorStore is the interface for storing and querying document vectors.
// Multi-tenancy is expressed through metadata on the stored documents and
// through the filters argument on Query.
type VectorStore interface {
	Add(ctx context.Context, docs []*schema.Document) error
	Query(ctx context.Context, embedding []float32, topK int, filters map[string]interface{}) ([]*schema.Result, error)
}

// EmbeddingModel is the interface for a text embedding model.
type EmbeddingModel interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// LLM is the interface for a large language model that can generate text.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
