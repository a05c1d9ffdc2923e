package chat

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/horo-ai/horo/internal/models"
	"github.com/horo-ai/horo/internal/rag/pipeline"
	"github.com/horo-ai/horo/internal/rag/schema"
	"github.com/horo-ai/horo/pkg/logger"
)

// Canned responses for the two terminal branches of Query.
const (
	noDocumentsAnswer = "I don't have any documents to search. Please upload your business documents first."
	queryErrorPrefix  = "I encountered an error while searching your documents: "
)

// Confidence is a binary heuristic, not a continuous score: high when the
// answer is substantial and backed by citations, low otherwise.
const (
	highConfidence        = 0.9
	lowConfidence         = 0.3
	minConfidentAnswerLen = 50
)

// Service is the per-tenant retrieval-and-answer core. It owns the tenant
// catalog and composes the indexing, retrieval and QA pipelines into the
// upload and query operations exposed over HTTP.
type Service struct {
	store     *TenantStore
	indexing  *pipeline.IndexingPipeline
	retrieval *pipeline.RetrievalPipeline
	qa        *pipeline.QAPipeline

	topK            int
	providerTimeout time.Duration
	log             *logger.Logger
}

// NewService creates a Service wired to the given pipelines.
// providerTimeout bounds every embedding/LLM call chain; zero disables the
// bound.
func NewService(
	store *TenantStore,
	indexing *pipeline.IndexingPipeline,
	retrieval *pipeline.RetrievalPipeline,
	qa *pipeline.QAPipeline,
	topK int,
	providerTimeout time.Duration,
	log *logger.Logger,
) *Service {
	if topK <= 0 {
		topK = 3
	}
	return &Service{
		store:           store,
		indexing:        indexing,
		retrieval:       retrieval,
		qa:              qa,
		topK:            topK,
		providerTimeout: providerTimeout,
		log:             log,
	}
}

// UploadDocument classifies, identifies and indexes one uploaded document for
// a tenant and returns its catalog record. The caller is responsible for
// content validation; indexing failures propagate as hard errors since there
// is no safe degraded-ingestion response.
func (s *Service) UploadDocument(ctx context.Context, tenantID, filename, content string) (models.DocumentInfo, error) {
	docID := DocumentID(tenantID, filename)
	docType := DetectDocumentType(filename, content)
	pages := EstimatePages(content)

	s.store.GetOrCreate(tenantID)

	source := &schema.Document{
		ID:   docID,
		Text: content,
		Metadata: map[string]interface{}{
			schema.MetadataKeyFileName: filename,
			schema.MetadataKeyDocType:  docType,
			schema.MetadataKeyTenantID: tenantID,
			schema.MetadataKeyDocID:    docID,
			schema.MetadataKeyPages:    pages,
		},
	}

	ctx, cancel := s.withProviderTimeout(ctx)
	defer cancel()

	if _, err := s.indexing.Run(ctx, source, tenantID); err != nil {
		return models.DocumentInfo{}, fmt.Errorf("failed to index document %q: %w", filename, err)
	}

	info := models.DocumentInfo{
		ID:     docID,
		Name:   filename,
		Type:   docType,
		Pages:  pages,
		Status: models.StatusReady,
	}
	s.store.Append(tenantID, info)

	s.log.WithTenant(tenantID).Info(fmt.Sprintf("Ingested document %q (%s, %d pages)", filename, docType, pages))
	return info, nil
}

// Query answers a question against a tenant's corpus. It never returns an
// error: tenants without documents get the fixed no-documents response, and
// provider failures are recovered into a degraded response that carries the
// underlying error message.
func (s *Service) Query(ctx context.Context, tenantID, question string) models.QueryResponse {
	if !s.store.Exists(tenantID) {
		return models.QueryResponse{
			Answer:          noDocumentsAnswer,
			Citations:       []models.Citation{},
			Confidence:      0.0,
			HasKnowledgeGap: true,
			Suggestions:     []string{"Business Documents", "Policy Manual"},
		}
	}

	ctx, cancel := s.withProviderTimeout(ctx)
	defer cancel()

	fragments, answer, err := s.retrieveAndAnswer(ctx, tenantID, question)
	if err != nil {
		s.log.WithTenant(tenantID).Error(fmt.Sprintf("Query failed: %v", err))
		return models.QueryResponse{
			Answer:          queryErrorPrefix + err.Error(),
			Citations:       []models.Citation{},
			Confidence:      0.0,
			HasKnowledgeGap: true,
			Suggestions:     []string{"Please try rephrasing your question"},
		}
	}

	citations := ExtractCitations(fragments)
	hasGap, suggestions := DetectKnowledgeGap(question, answer)

	confidence := lowConfidence
	if len(citations) > 0 && utf8.RuneCountInString(answer) > minConfidentAnswerLen {
		confidence = highConfidence
	}

	resp := models.QueryResponse{
		Answer:          answer,
		Citations:       citations,
		Confidence:      confidence,
		HasKnowledgeGap: hasGap,
	}
	if hasGap {
		resp.Suggestions = suggestions
	}
	return resp
}

// retrieveAndAnswer runs the retrieval and QA pipelines as one step whose
// error the caller maps into the degraded-response branch.
func (s *Service) retrieveAndAnswer(ctx context.Context, tenantID, question string) ([]*schema.Result, string, error) {
	fragments, err := s.retrieval.Run(ctx, question, tenantID, s.topK)
	if err != nil {
		return nil, "", err
	}

	answer, err := s.qa.Run(ctx, question, fragments)
	if err != nil {
		return nil, "", err
	}
	return fragments, answer, nil
}

// ListDocuments returns the tenant's document catalog in upload order.
func (s *Service) ListDocuments(tenantID string) []models.DocumentInfo {
	return s.store.ListDocuments(tenantID)
}

func (s *Service) withProviderTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.providerTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.providerTimeout)
}
