package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/horo-ai/horo/internal/rag/interfaces"
	"github.com/horo-ai/horo/internal/rag/schema"
	"github.com/horo-ai/horo/internal/rag/storages/vectorstore"
	"github.com/horo-ai/horo/pkg/logger"
)

// IndexingPipeline orchestrates the process of splitting, embedding and
// storing an uploaded document.
type IndexingPipeline struct {
	splitter    interfaces.Splitter
	embedder    interfaces.EmbeddingModel
	docStore    interfaces.DocStore
	vectorStore interfaces.VectorStore
	log         *logger.Logger
}

// NewIndexingPipeline creates a new IndexingPipeline.
func NewIndexingPipeline(
	splitter interfaces.Splitter,
	embedder interfaces.EmbeddingModel,
	docStore interfaces.DocStore,
	vectorStore interfaces.VectorStore,
	log *logger.Logger,
) *IndexingPipeline {
	return &IndexingPipeline{
		splitter:    splitter,
		embedder:    embedder,
		docStore:    docStore,
		vectorStore: vectorStore,
		log:         log,
	}
}

// Run indexes a single source document for a tenant and returns the number of
// chunks stored. The source document's metadata is inherited by every chunk.
func (p *IndexingPipeline) Run(ctx context.Context, source *schema.Document, tenantID string) (int, error) {
	p.log.Info(fmt.Sprintf("Starting indexing of %q for tenant %s", source.FileName(), tenantID))

	// 1. Split the document into chunks
	chunks, err := p.splitter.Split(ctx, []*schema.Document{source})
	if err != nil {
		p.log.Error(fmt.Sprintf("Failed to split document: %v", err))
		return 0, fmt.Errorf("failed to split document: %w", err)
	}
	if len(chunks) == 0 {
		return 0, fmt.Errorf("document %q produced no chunks", source.FileName())
	}

	// 2. Make sure every chunk carries the tenant marker the vector store
	// filters on
	for _, chunk := range chunks {
		if chunk.Metadata == nil {
			chunk.Metadata = make(map[string]interface{})
		}
		chunk.Metadata[vectorstore.FieldTenantID] = tenantID
	}

	// 3. Embed the chunks
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	embeddings, err := p.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		p.log.Error(fmt.Sprintf("Failed to embed chunks: %v", err))
		return 0, fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return 0, fmt.Errorf("embedder returned %d vectors for %d chunks", len(embeddings), len(chunks))
	}
	for i, chunk := range chunks {
		chunk.Embedding = embeddings[i]
	}

	// 4. Store the chunks concurrently
	eg, gCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		chunkMap := make(map[string]*schema.Document, len(chunks))
		for _, chunk := range chunks {
			chunkMap[chunk.ID] = chunk
		}
		if err := p.docStore.Add(gCtx, tenantID, chunkMap); err != nil {
			p.log.Error(fmt.Sprintf("Failed to add chunks to DocStore: %v", err))
			return fmt.Errorf("failed to add chunks to doc store: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		if err := p.vectorStore.Add(gCtx, chunks); err != nil {
			p.log.Error(fmt.Sprintf("Failed to add chunks to VectorStore: %v", err))
			return fmt.Errorf("failed to add chunks to vector store: %w", err)
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return 0, err
	}

	p.log.Info(fmt.Sprintf("Indexed %q into %d chunks for tenant %s", source.FileName(), len(chunks), tenantID))
	return len(chunks), nil
}
