package pipeline

import (
	"context"
	"fmt"

	"github.com/horo-ai/horo/internal/rag/interfaces"
	"github.com/horo-ai/horo/internal/rag/schema"
	"github.com/horo-ai/horo/internal/rag/storages/vectorstore"
	"github.com/horo-ai/horo/pkg/logger"
)

// RetrievalPipeline orchestrates the process of retrieving the document
// fragments most relevant to a question.
type RetrievalPipeline struct {
	embedder    interfaces.EmbeddingModel
	vectorStore interfaces.VectorStore
	docStore    interfaces.DocStore
	log         *logger.Logger
}

// NewRetrievalPipeline creates a new RetrievalPipeline.
func NewRetrievalPipeline(
	embedder interfaces.EmbeddingModel,
	vectorStore interfaces.VectorStore,
	docStore interfaces.DocStore,
	log *logger.Logger,
) *RetrievalPipeline {
	return &RetrievalPipeline{
		embedder:    embedder,
		vectorStore: vectorStore,
		docStore:    docStore,
		log:         log,
	}
}

// Run executes the retrieval pipeline scoped to a single tenant. Results keep
// the vector store's relevance scores and are enriched with the full chunk
// text from the doc store.
func (p *RetrievalPipeline) Run(ctx context.Context, query, tenantID string, topK int) ([]*schema.Result, error) {
	p.log.Info(fmt.Sprintf("Starting retrieval for tenant %s", tenantID))

	// 1. Embed the query
	queryEmbedding, err := p.embedder.Embed(ctx, query)
	if err != nil {
		p.log.Error(fmt.Sprintf("Failed to embed query: %v", err))
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	// 2. Query the vector store with the tenant filter
	filters := map[string]interface{}{
		vectorstore.FieldTenantID: tenantID,
	}
	hits, err := p.vectorStore.Query(ctx, queryEmbedding, topK, filters)
	if err != nil {
		p.log.Error(fmt.Sprintf("Failed to query vector store: %v", err))
		return nil, err
	}
	if len(hits) == 0 {
		p.log.Info("No fragments found in vector store for the given query.")
		return []*schema.Result{}, nil
	}

	// 3. Enrich the hits with full text and metadata from the doc store
	ids := make([]string, len(hits))
	for i, hit := range hits {
		ids[i] = hit.Document.ID
	}
	fullDocs, err := p.docStore.Get(ctx, tenantID, ids)
	if err != nil {
		p.log.Error(fmt.Sprintf("Failed to get full chunks from doc store: %v", err))
		return nil, err
	}

	results := make([]*schema.Result, 0, len(hits))
	for _, hit := range hits {
		if fullDoc, ok := fullDocs[hit.Document.ID]; ok {
			hit.Document = fullDoc
		} else if hit.Document.Text == "" {
			p.log.Warn(fmt.Sprintf("Could not find full chunk for ID %s in doc store for tenant %s", hit.Document.ID, tenantID))
			continue
		}
		results = append(results, hit)
	}

	p.log.Info(fmt.Sprintf("Retrieved %d fragments for tenant %s", len(results), tenantID))
	return results, nil
}
