package splitters

import (
	"context"
	"strings"
	"testing"

	"github.com/horo-ai/horo/internal/rag/schema"
)

func TestSentenceSplitter_GroupsSentences(t *testing.T) {
	splitter := NewSentenceSplitter(2, 0)
	doc := &schema.Document{
		ID:   "doc1",
		Text: "First sentence. Second sentence. Third sentence. Fourth sentence.",
	}

	chunks, err := splitter.Split(context.Background(), []*schema.Document{doc})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != "First sentence. Second sentence." {
		t.Errorf("chunk 0 = %q", chunks[0].Text)
	}
	if chunks[1].Text != "Third sentence. Fourth sentence." {
		t.Errorf("chunk 1 = %q", chunks[1].Text)
	}
}

func TestSentenceSplitter_Overlap(t *testing.T) {
	splitter := NewSentenceSplitter(2, 1)
	doc := &schema.Document{
		ID:   "doc1",
		Text: "One. Two. Three.",
	}

	chunks, err := splitter.Split(context.Background(), []*schema.Document{doc})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != "One. Two." {
		t.Errorf("chunk 0 = %q", chunks[0].Text)
	}
	// With one sentence of overlap the second chunk repeats "Two."
	if chunks[1].Text != "Two. Three." {
		t.Errorf("chunk 1 = %q", chunks[1].Text)
	}
}

func TestSentenceSplitter_MetadataInheritance(t *testing.T) {
	splitter := NewSentenceSplitter(1, 0)
	doc := &schema.Document{
		ID:   "doc1",
		Text: "One. Two.",
		Metadata: map[string]interface{}{
			schema.MetadataKeyTenantID: "t1",
			schema.MetadataKeyFileName: "a.txt",
		},
	}

	chunks, err := splitter.Split(context.Background(), []*schema.Document{doc})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
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
		if chunk.ID == "" || chunk.ID == doc.ID {
			t.Errorf("chunk %d should get a fresh ID, got %q", i, chunk.ID)
		}
	}

	// Metadata maps must not be shared between chunks.
	chunks[0].Metadata["marker"] = true
	if _, ok := chunks[1].Metadata["marker"]; ok {
		t.Error("chunks share a metadata map")
	}
}

func TestSentenceSplitter_UnterminatedTail(t *testing.T) {
	splitter := NewSentenceSplitter(5, 0)
	body := strings.Repeat("lending criteria apply to every application ", 40)
	doc := &schema.Document{
		ID:   "doc1",
		Text: "Intro. " + body,
	}

	chunks, err := splitter.Split(context.Background(), []*schema.Document{doc})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}

	var total int
	var sawBody bool
	for _, chunk := range chunks {
		total += len(chunk.Text)
		if strings.Contains(chunk.Text, "lending criteria") {
			sawBody = true
		}
	}
	if !sawBody {
		t.Error("text after the last terminator was not indexed")
	}
	// Everything except separating whitespace must survive splitting.
	if want := len(strings.TrimSpace(doc.Text)); total < want-len(chunks) {
		t.Errorf("indexed %d chars of %d", total, want)
	}
}

func TestSentenceSplitter_NoTerminator(t *testing.T) {
	splitter := NewSentenceSplitter(5, 0)
	doc := &schema.Document{
		ID:   "doc1",
		Text: "a fragment with no sentence terminator",
	}

	chunks, err := splitter.Split(context.Background(), []*schema.Document{doc})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected the whole text as one chunk, got %d chunks", len(chunks))
	}
	if chunks[0].Text != doc.Text {
		t.Errorf("chunk = %q", chunks[0].Text)
	}
}

func TestSentenceSplitter_EmptyDocument(t *testing.T) {
	splitter := NewSentenceSplitter(5, 0)
	doc := &schema.Document{ID: "doc1", Text: "   \n  "}

	chunks, err := splitter.Split(context.Background(), []*schema.Document{doc})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected no chunks for blank text, got %d", len(chunks))
	}
}

func TestSentenceSplitter_DefaultsOnBadConfig(t *testing.T) {
	splitter := NewSentenceSplitter(0, 7)
	if splitter.SentencesPerChunk != 5 {
		t.Errorf("SentencesPerChunk = %d, want 5", splitter.SentencesPerChunk)
	}
	if splitter.OverlapSentences != 0 {
		t.Errorf("OverlapSentences = %d, want 0", splitter.OverlapSentences)
	}

	text := strings.Repeat("Sentence here. ", 7)
	chunks, err := splitter.Split(context.Background(), []*schema.Document{{ID: "d", Text: text}})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chunks) != 2 {
		t.Errorf("expected 2 chunks of up to 5 sentences, got %d", len(chunks))
	}
}
