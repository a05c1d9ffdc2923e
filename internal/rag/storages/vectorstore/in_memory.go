package vectorstore

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/horo-ai/horo/internal/rag/interfaces"
	"github.com/horo-ai/horo/internal/rag/schema"
)

const (
	// Schema fields stored alongside each vector that queries can filter on.
	FieldID        = "id"
	FieldEmbedding = "embedding"
	FieldTenantID  = "tenant_id"
	FieldDocID     = "doc_id"
)

// InMemoryStore is a thread-safe, brute-force cosine similarity vector store.
// Vectors and their source chunks live in parallel slices; queries scan every
// stored vector whose metadata matches the filters, which is adequate for the
// per-tenant corpus sizes this service targets.
type InMemoryStore struct {
	mu      sync.RWMutex
	vectors [][]float32
	docs    []*schema.Document
}

// NewInMemoryStore creates an empty InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Add appends a list of documents and their embeddings to the store.
func (s *InMemoryStore) Add(ctx context.Context, docs []*schema.Document) error {
	for _, doc := range docs {
		if len(doc.Embedding) == 0 {
			return fmt.Errorf("document %s has no embedding", doc.ID)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range docs {
		s.vectors = append(s.vectors, doc.Embedding)
		s.docs = append(s.docs, doc)
	}
	return nil
}

// Query returns the topK stored documents most similar to the given embedding,
// restricted to documents whose metadata matches every filter entry. Scores
// are cosine similarities clamped to [0,1].
func (s *InMemoryStore) Query(ctx context.Context, embedding []float32, topK int, filters map[string]interface{}) ([]*schema.Result, error) {
	if topK <= 0 {
		topK = 3
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*schema.Result
	for i, doc := range s.docs {
		if !matchesFilters(doc, filters) {
			continue
		}
		score := cosineSimilarity(embedding, s.vectors[i])
		if score < 0 {
			score = 0
		}
		results = append(results, &schema.Result{
			Document: doc,
			Score:    score,
			Scored:   true,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// matchesFilters reports whether every filter key/value pair is present in the
// document metadata.
func matchesFilters(doc *schema.Document, filters map[string]interface{}) bool {
	for k, v := range filters {
		if doc.Metadata == nil || doc.Metadata[k] != v {
			return false
		}
	}
	return true
}

// cosineSimilarity computes the cosine similarity between two vectors.
// Mismatched lengths are compared over the shorter prefix.
func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

var _ interfaces.VectorStore = (*InMemoryStore)(nil)
