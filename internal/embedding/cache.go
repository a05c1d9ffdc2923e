package embedding

import (
	"context"

	"github.com/horo-ai/horo/internal/rag/interfaces"
	"github.com/horo-ai/horo/pkg/util"
)

// CachedModel wraps an EmbeddingModel with an LRU cache keyed by the input
// text. Query embedding is on the hot path of every question, and tenants tend
// to repeat questions, so caching saves a round trip to the model server.
// Batch calls bypass the cache since they run once per document at ingest.
type CachedModel struct {
	inner interfaces.EmbeddingModel
	cache *util.LRUCache[string, []float32]
}

// NewCachedModel wraps inner with a cache of the given capacity.
func NewCachedModel(inner interfaces.EmbeddingModel, capacity int) *CachedModel {
	return &CachedModel{
		inner: inner,
		cache: util.NewLRU[string, []float32](capacity),
	}
}

// Embed returns the cached embedding for text, computing and caching it on a
// miss.
func (m *CachedModel) Embed(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := m.cache.Get(text); ok {
		return vec, nil
	}

	vec, err := m.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	m.cache.Put(text, vec)
	return vec, nil
}

// EmbedBatch delegates to the wrapped model without caching.
func (m *CachedModel) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return m.inner.EmbedBatch(ctx, texts)
}

var _ interfaces.EmbeddingModel = (*CachedModel)(nil)
