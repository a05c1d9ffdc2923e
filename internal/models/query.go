package models

// QueryRequest is the JSON body of a POST /query call. TenantID must match
// the X-Tenant-ID header.
type QueryRequest struct {
	TenantID string `json:"tenant_id" binding:"required"`
	Question string `json:"question" binding:"required"`
}

// Citation points a generated answer back at a fragment of a source document.
type Citation struct {
	Document     string  `json:"document"`
	Page         int     `json:"page"`
	DocumentType string  `json:"document_type"`
	Confidence   float64 `json:"confidence"`
}

// QueryResponse is the result of answering a question against a tenant's
// corpus. Suggestions is null unless a knowledge gap was detected.
type QueryResponse struct {
	Answer          string     `json:"answer"`
	Citations       []Citation `json:"citations"`
	Confidence      float64    `json:"confidence"`
	HasKnowledgeGap bool       `json:"has_knowledge_gap"`
	Suggestions     []string   `json:"suggestions"`
}
