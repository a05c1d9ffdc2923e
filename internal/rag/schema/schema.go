package schema

const (
	// MetadataKeyFileName is the key for the source file name.
	MetadataKeyFileName = "file_name"
	// MetadataKeyDocType is the key for the detected document category.
	MetadataKeyDocType = "doc_type"
	// MetadataKeyTenantID is the key for the owning tenant identifier.
	MetadataKeyTenantID = "tenant_id"
	// MetadataKeyDocID is the key for the identifier of the source document.
	MetadataKeyDocID = "doc_id"
	// MetadataKeyPages is the key for the estimated page count of the source document.
	MetadataKeyPages = "pages"
)

// Document is the central data structure representing a piece of text and its
// associated data. It is the primary data carrier throughout the RAG pipeline:
// an uploaded file enters as a single Document and is split into chunk
// Documents before embedding and storage.
type Document struct {
	// ID is the unique identifier for this document chunk.
	ID string

	// Text is the string content of the document chunk.
	Text string

	// Embedding is the vector representation of the text.
	Embedding []float32

	// Metadata holds arbitrary data about the document, such as file_name,
	// doc_type and tenant_id.
	Metadata map[string]interface{}
}

// Result is a document chunk returned from a similarity query together with
// its relevance score. Scored is false when the backing store does not report
// a score for the hit; consumers are expected to fill in their own default.
type Result struct {
	Document *Document
	Score    float64
	Scored   bool
}

// FileName returns the source file name recorded in the document metadata,
// or the empty string when absent.
func (d *Document) FileName() string {
	if d == nil || d.Metadata == nil {
		return ""
	}
	if name, ok := d.Metadata[MetadataKeyFileName].(string); ok {
		return name
	}
	return ""
}

// DocType returns the document category recorded in the metadata, or the
// empty string when absent.
func (d *Document) DocType() string {
	if d == nil || d.Metadata == nil {
		return ""
	}
	if t, ok := d.Metadata[MetadataKeyDocType].(string); ok {
		return t
	}
	return ""
}

// Pages returns the estimated page count of the source document recorded in
// the metadata, or 1 when absent.
func (d *Document) Pages() int {
	if d == nil || d.Metadata == nil {
		return 1
	}
	switch v := d.Metadata[MetadataKeyPages].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 1
}
