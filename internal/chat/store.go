package chat

import (
	"sync"

	"github.com/horo-ai/horo/internal/models"
)

// TenantStore owns the mapping from tenant id to that tenant's document
// catalog. A catalog is created lazily on first ingestion and never on query:
// querying a tenant that has never ingested is a distinct, valid state.
//
// All state is guarded by one RWMutex; concurrent uploads for the same tenant
// serialize on the append.
type TenantStore struct {
	mu       sync.RWMutex
	catalogs map[string][]models.DocumentInfo
}

// NewTenantStore creates an empty TenantStore.
func NewTenantStore() *TenantStore {
	return &TenantStore{
		catalogs: make(map[string][]models.DocumentInfo),
	}
}

// GetOrCreate ensures a catalog exists for the tenant. It is called only from
// the ingestion path.
func (s *TenantStore) GetOrCreate(tenantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.catalogs[tenantID]; !ok {
		s.catalogs[tenantID] = []models.DocumentInfo{}
	}
}

// Exists reports whether the tenant has a catalog. Absence is a normal,
// non-error outcome.
func (s *TenantStore) Exists(tenantID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.catalogs[tenantID]
	return ok
}

// Append adds a document record to the tenant's catalog, preserving insertion
// order. Records are append-only; re-uploading a filename appends a second
// record under the same id.
func (s *TenantStore) Append(tenantID string, info models.DocumentInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalogs[tenantID] = append(s.catalogs[tenantID], info)
}

// ListDocuments returns the tenant's catalog in insertion order. Tenants
// without a catalog get an empty, non-nil slice so the API can render an
// empty JSON array.
func (s *TenantStore) ListDocuments(tenantID string) []models.DocumentInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	catalog := s.catalogs[tenantID]
	out := make([]models.DocumentInfo, len(catalog))
	copy(out, catalog)
	return out
}
