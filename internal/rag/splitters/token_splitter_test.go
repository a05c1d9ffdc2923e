package splitters

import (
	"context"
	"strings"
	"testing"

	"github.com/pkoukk/tiktoken-go"

	"github.com/horo-ai/horo/internal/rag/schema"
)

func TestTokenSplitter_ChunkSizeAndOverlap(t *testing.T) {
	splitter, err := NewTokenSplitter(8, 2)
	if err != nil {
		t.Fatalf("NewTokenSplitter: %v", err)
	}
	tke, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		t.Fatalf("GetEncoding: %v", err)
	}

	text := strings.Repeat("loan repayment is deducted from payroll ", 6)
	doc := &schema.Document{ID: "doc1", Text: text}

	chunks, err := splitter.Split(context.Background(), []*schema.Document{doc})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i, chunk := range chunks {
		if n := len(tke.Encode(chunk.Text, nil, nil)); n > 8 {
			t.Errorf("chunk %d has %d tokens, want at most 8", i, n)
		}
	}

	// Consecutive chunks share the overlap window.
	prev := tke.Encode(chunks[0].Text, nil, nil)
	next := tke.Encode(chunks[1].Text, nil, nil)
	for i := 0; i < 2; i++ {
		if prev[len(prev)-2+i] != next[i] {
			t.Fatalf("overlap token %d differs: %d vs %d", i, prev[len(prev)-2+i], next[i])
		}
	}
}

func TestTokenSplitter_MetadataInheritance(t *testing.T) {
	splitter, err := NewTokenSplitter(4, 0)
	if err != nil {
		t.Fatalf("NewTokenSplitter: %v", err)
	}
	doc := &schema.Document{
		ID:   "doc1",
		Text: "the maximum loan amount is three months of base salary",
		Metadata: map[string]interface{}{
			schema.MetadataKeyTenantID: "t1",
			schema.MetadataKeyFileName: "loan_policy.txt",
		},
	}

	chunks, err := splitter.Split(context.Background(), []*schema.Document{doc})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i, chunk := range chunks {
		if chunk.Metadata[schema.MetadataKeyTenantID] != "t1" {
			t.Errorf("chunk %d lost tenant metadata", i)
		}
		if chunk.Metadata["original_doc_id"] != "doc1" {
			t.Errorf("chunk %d original_doc_id = %v", i, chunk.Metadata["original_doc_id"])
		}
		if chunk.Metadata["chunk_number"] != i+1 {
			t.Errorf("chunk %d chunk_number = %v", i, chunk.Metadata["chunk_number"])
		}
	}

	chunks[0].Metadata["marker"] = true
	if _, ok := chunks[1].Metadata["marker"]; ok {
		t.Error("chunks share a metadata map")
	}
}

func TestTokenSplitter_RejectsOverlapNotSmallerThanSize(t *testing.T) {
	if _, err := NewTokenSplitter(4, 4); err == nil {
		t.Error("expected error for overlap equal to chunk size")
	}
	if _, err := NewTokenSplitter(4, 5); err == nil {
		t.Error("expected error for overlap larger than chunk size")
	}
}
