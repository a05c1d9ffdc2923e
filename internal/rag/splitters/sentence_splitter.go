package splitters

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/horo-ai/horo/internal/rag/interfaces"
	"github.com/horo-ai/horo/internal/rag/schema"
)

// SentenceSplitter implements the Splitter interface by grouping sentences
// into overlapping chunks. It needs no external tokenizer, which makes it the
// default splitter for deployments without network access.
type SentenceSplitter struct {
	SentencesPerChunk int
	OverlapSentences  int
	splitter          *regexp.Regexp
}

// NewSentenceSplitter creates a new SentenceSplitter. Non-positive chunk
// sizes fall back to five sentences per chunk with no overlap.
func NewSentenceSplitter(sentencesPerChunk, overlapSentences int) *SentenceSplitter {
	if sentencesPerChunk <= 0 {
		sentencesPerChunk = 5
	}
	if overlapSentences < 0 || overlapSentences >= sentencesPerChunk {
		overlapSentences = 0
	}
	return &SentenceSplitter{
		SentencesPerChunk: sentencesPerChunk,
		OverlapSentences:  overlapSentences,
		splitter:          regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`),
	}
}

// Split splits a list of documents into sentence-based chunks.
// Chunk documents carry a copy of the source document's metadata plus
// chunk-specific fields.
func (s *SentenceSplitter) Split(ctx context.Context, docs []*schema.Document) ([]*schema.Document, error) {
	var chunks []*schema.Document

	for _, doc := range docs {
		sentences := s.splitter.FindAllString(doc.Text, -1)

		// Text after the last terminator has no regexp match but still has
		// to be indexed, so it becomes a final sentence of its own.
		tail := doc.Text
		if len(sentences) > 0 {
			idx := s.splitter.FindAllStringIndex(doc.Text, -1)
			tail = doc.Text[idx[len(idx)-1][1]:]
		}
		if trimmed := strings.TrimSpace(tail); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
		if len(sentences) == 0 {
			continue
		}
		for i := range sentences {
			sentences[i] = strings.TrimSpace(sentences[i])
		}

		step := s.SentencesPerChunk - s.OverlapSentences
		number := 1
		for start := 0; start < len(sentences); start += step {
			end := start + s.SentencesPerChunk
			if end > len(sentences) {
				end = len(sentences)
			}

			chunk := &schema.Document{
				ID:       uuid.New().String(),
				Text:     strings.Join(sentences[start:end], " "),
				Metadata: copyMetadata(doc.Metadata),
			}
			chunk.Metadata["original_doc_id"] = doc.ID
			chunk.Metadata["chunk_number"] = number
			chunks = append(chunks, chunk)
			number++

			if end == len(sentences) {
				break
			}
		}
	}

	return chunks, nil
}

// copyMetadata deep copies a metadata map so chunks never share state.
func copyMetadata(md map[string]interface{}) map[string]interface{} {
	newMd := make(map[string]interface{}, len(md))
	for k, v := range md {
		newMd[k] = v
	}
	return newMd
}

var _ interfaces.Splitter = (*SentenceSplitter)(nil)
