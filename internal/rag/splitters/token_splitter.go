package splitters

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkoukk/tiktoken-go"

	"github.com/horo-ai/horo/internal/rag/interfaces"
	"github.com/horo-ai/horo/internal/rag/schema"
)

// TokenSplitter implements the Splitter interface to split documents based on
// token count.
type TokenSplitter struct {
	ChunkSize    int
	ChunkOverlap int
	tokenizer    *tiktoken.Tiktoken
}

// NewTokenSplitter creates a new TokenSplitter.
// It initializes a tokenizer for the specified encoding.
func NewTokenSplitter(chunkSize, chunkOverlap int) (*TokenSplitter, error) {
	// "cl100k_base" is the tokenizer for gpt-4, gpt-3.5-turbo and
	// text-embedding-ada-002.
	tke, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to get tiktoken encoding: %w", err)
	}
	if chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("chunk overlap %d must be smaller than chunk size %d", chunkOverlap, chunkSize)
	}

	return &TokenSplitter{
		ChunkSize:    chunkSize,
		ChunkOverlap: chunkOverlap,
		tokenizer:    tke,
	}, nil
}

// Split splits a list of documents into smaller chunks based on the token size.
func (s *TokenSplitter) Split(ctx context.Context, docs []*schema.Document) ([]*schema.Document, error) {
	var chunks []*schema.Document

	for _, doc := range docs {
		tokens := s.tokenizer.Encode(doc.Text, nil, nil)
		step := s.ChunkSize - s.ChunkOverlap

		for start := 0; start < len(tokens); start += step {
			end := start + s.ChunkSize
			if end > len(tokens) {
				end = len(tokens)
			}

			chunk := &schema.Document{
				ID:       uuid.New().String(),
				Text:     s.tokenizer.Decode(tokens[start:end]),
				Metadata: copyMetadata(doc.Metadata),
			}
			chunk.Metadata["original_doc_id"] = doc.ID
			chunk.Metadata["chunk_number"] = (start / step) + 1
			chunks = append(chunks, chunk)

			if end == len(tokens) {
				break
			}
		}
	}

	return chunks, nil
}

var _ interfaces.Splitter = (*TokenSplitter)(nil)
