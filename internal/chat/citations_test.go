package chat

import (
	"strings"
	"testing"

	"github.com/horo-ai/horo/internal/rag/schema"
)

func fragment(text string, md map[string]interface{}, score float64, scored bool) *schema.Result {
	return &schema.Result{
		Document: &schema.Document{ID: "c1", Text: text, Metadata: md},
		Score:    score,
		Scored:   scored,
	}
}

func TestExtractCitations_Defaults(t *testing.T) {
	// No filename, no type, no score: every default kicks in.
	citations := ExtractCitations([]*schema.Result{
		fragment("short fragment", nil, 0, false),
	})
	if len(citations) != 1 {
		t.Fatalf("expected 1 citation, got %d", len(citations))
	}
	c := citations[0]
	if c.Document != "Unknown" {
		t.Errorf("Document = %q, want Unknown", c.Document)
	}
	if c.DocumentType != "Document" {
		t.Errorf("DocumentType = %q, want Document", c.DocumentType)
	}
	if c.Confidence != 0.8 {
		t.Errorf("Confidence = %v, want 0.8 for unscored fragment", c.Confidence)
	}
	if c.Page != 1 {
		t.Errorf("Page = %d, want 1", c.Page)
	}
}

func TestExtractCitations_ScoredFragment(t *testing.T) {
	md := map[string]interface{}{
		schema.MetadataKeyFileName: "loan_policy.txt",
		schema.MetadataKeyDocType:  "Policy",
		schema.MetadataKeyPages:    3,
	}
	citations := ExtractCitations([]*schema.Result{
		fragment("some text", md, 0.42, true),
	})
	c := citations[0]
	if c.Document != "loan_policy.txt" {
		t.Errorf("Document = %q", c.Document)
	}
	if c.DocumentType != "Policy" {
		t.Errorf("DocumentType = %q", c.DocumentType)
	}
	if c.Confidence != 0.42 {
		t.Errorf("Confidence = %v, want 0.42", c.Confidence)
	}
}

func TestExtractCitations_PageBounds(t *testing.T) {
	md := map[string]interface{}{
		schema.MetadataKeyFileName: "doc.txt",
		schema.MetadataKeyPages:    2,
	}

	// A 1600-char fragment estimates page 3 but is capped at the document's
	// 2 pages.
	long := ExtractCitations([]*schema.Result{
		fragment(strings.Repeat("a", 1600), md, 0.9, true),
	})
	if long[0].Page != 2 {
		t.Errorf("Page = %d, want 2 (capped at document pages)", long[0].Page)
	}

	// A tiny fragment floors at page 1.
	short := ExtractCitations([]*schema.Result{
		fragment("tiny", md, 0.9, true),
	})
	if short[0].Page != 1 {
		t.Errorf("Page = %d, want 1", short[0].Page)
	}

	// Within bounds: 1100 chars is page 2 of 5.
	md5pages := map[string]interface{}{
		schema.MetadataKeyFileName: "doc.txt",
		schema.MetadataKeyPages:    5,
	}
	mid := ExtractCitations([]*schema.Result{
		fragment(strings.Repeat("a", 1100), md5pages, 0.9, true),
	})
	if mid[0].Page != 2 {
		t.Errorf("Page = %d, want 2", mid[0].Page)
	}
}

func TestExtractCitations_PreservesOrder(t *testing.T) {
	fragments := []*schema.Result{
		fragment("first", map[string]interface{}{schema.MetadataKeyFileName: "a.txt"}, 0.2, true),
		fragment("second", map[string]interface{}{schema.MetadataKeyFileName: "b.txt"}, 0.9, true),
		fragment("third", map[string]interface{}{schema.MetadataKeyFileName: "c.txt"}, 0.5, true),
	}
	citations := ExtractCitations(fragments)
	if len(citations) != 3 {
		t.Fatalf("expected 3 citations, got %d", len(citations))
	}
	for i, want := range []string{"a.txt", "b.txt", "c.txt"} {
		if citations[i].Document != want {
			t.Errorf("citation %d = %q, want %q", i, citations[i].Document, want)
		}
	}
}

func TestExtractCitations_Empty(t *testing.T) {
	citations := ExtractCitations(nil)
	if citations == nil {
		t.Error("expected non-nil empty slice")
	}
	if len(citations) != 0 {
		t.Errorf("expected 0 citations, got %d", len(citations))
	}
}
