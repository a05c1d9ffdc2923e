package models

// DocumentInfo describes one ingested document as exposed by the API and
// stored in the tenant catalog. Records are created once during ingestion and
// never mutated afterwards.
type DocumentInfo struct {
	// ID is derived from (tenant id, filename), not from content, so
	// re-uploading the same filename reuses the same id.
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Pages  int    `json:"pages"`
	Status string `json:"status"`
}

// Document type categories assigned by the classifier.
const (
	DocTypePolicy   = "Policy"
	DocTypeHandbook = "Handbook"
	DocTypeFinance  = "Finance"
	DocTypeDocument = "Document"
)

// StatusReady is the lifecycle status of a successfully ingested document.
const StatusReady = "ready"
