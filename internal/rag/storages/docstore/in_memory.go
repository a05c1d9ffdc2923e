package docstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/horo-ai/horo/internal/rag/interfaces"
	"github.com/horo-ai/horo/internal/rag/schema"
)

// InMemoryDocStore is a thread-safe, in-memory implementation of the DocStore
// interface. It uses a tenantID prefix on keys to keep tenants isolated.
type InMemoryDocStore struct {
	mu   sync.RWMutex
	docs map[string]*schema.Document
}

// NewInMemoryDocStore creates a new instance of InMemoryDocStore.
func NewInMemoryDocStore() *InMemoryDocStore {
	return &InMemoryDocStore{
		docs: make(map[string]*schema.Document),
	}
}

// tenantKey generates a key that is unique for a given tenant and chunk ID.
func (s *InMemoryDocStore) tenantKey(tenantID, docID string) string {
	return fmt.Sprintf("%s:%s", tenantID, docID)
}

// Add adds a map of documents to the store for a specific tenant.
func (s *InMemoryDocStore) Add(ctx context.Context, tenantID string, docs map[string]*schema.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, doc := range docs {
		s.docs[s.tenantKey(tenantID, id)] = doc
	}
	return nil
}

// Get retrieves a map of documents from the store by their IDs for a specific
// tenant. IDs that do not belong to the tenant are silently skipped.
func (s *InMemoryDocStore) Get(ctx context.Context, tenantID string, ids []string) (map[string]*schema.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*schema.Document)
	for _, id := range ids {
		if doc, ok := s.docs[s.tenantKey(tenantID, id)]; ok {
			result[id] = doc // keyed by the original ID, not the tenant key
		}
	}
	return result, nil
}

var _ interfaces.DocStore = (*InMemoryDocStore)(nil)
