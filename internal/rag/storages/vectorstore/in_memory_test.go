package vectorstore

import (
	"context"
	"testing"

	"github.com/horo-ai/horo/internal/rag/schema"
)

func storedDoc(id, tenant string, embedding []float32) *schema.Document {
	return &schema.Document{
		ID:        id,
		Embedding: embedding,
		Metadata: map[string]interface{}{
			schema.MetadataKeyTenantID: tenant,
		},
	}
}

func TestInMemoryStore_QueryRanksBySimilarity(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	err := store.Add(ctx, []*schema.Document{
		storedDoc("orthogonal", "t1", []float32{0, 1, 0}),
		storedDoc("exact", "t1", []float32{1, 0, 0}),
		storedDoc("close", "t1", []float32{1, 0.2, 0}),
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	results, err := store.Query(ctx, []float32{1, 0, 0}, 3, nil)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Document.ID != "exact" || results[1].Document.ID != "close" {
		t.Errorf("ranking wrong: %s, %s, %s",
			results[0].Document.ID, results[1].Document.ID, results[2].Document.ID)
	}
	if results[0].Score <= results[1].Score || results[1].Score <= results[2].Score {
		t.Errorf("scores not descending: %v, %v, %v",
			results[0].Score, results[1].Score, results[2].Score)
	}
	if !results[0].Scored {
		t.Error("results should carry real scores")
	}
}

func TestInMemoryStore_TopKLimit(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	store.Add(ctx, []*schema.Document{
		storedDoc("a", "t1", []float32{1, 0}),
		storedDoc("b", "t1", []float32{0.9, 0.1}),
		storedDoc("c", "t1", []float32{0.8, 0.2}),
		storedDoc("d", "t1", []float32{0.7, 0.3}),
	})

	results, err := store.Query(ctx, []float32{1, 0}, 2, nil)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results with topK=2, got %d", len(results))
	}
}

func TestInMemoryStore_TenantFilter(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	store.Add(ctx, []*schema.Document{
		storedDoc("t1-doc", "t1", []float32{1, 0}),
		storedDoc("t2-doc", "t2", []float32{1, 0}),
	})

	results, err := store.Query(ctx, []float32{1, 0}, 10, map[string]interface{}{
		FieldTenantID: "t1",
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result after tenant filter, got %d", len(results))
	}
	if results[0].Document.ID != "t1-doc" {
		t.Errorf("filter leaked another tenant's document: %s", results[0].Document.ID)
	}
}

func TestInMemoryStore_ScoresClamped(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	// Opposite direction gives cosine -1, which must clamp to 0.
	store.Add(ctx, []*schema.Document{
		storedDoc("opposite", "t1", []float32{-1, 0}),
	})

	results, err := store.Query(ctx, []float32{1, 0}, 1, nil)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Score != 0 {
		t.Errorf("Score = %v, want 0 after clamping", results[0].Score)
	}
}

func TestInMemoryStore_AddRejectsMissingEmbedding(t *testing.T) {
	store := NewInMemoryStore()

	err := store.Add(context.Background(), []*schema.Document{
		{ID: "no-vector"},
	})
	if err == nil {
		t.Fatal("expected error for document without embedding")
	}
}

func TestInMemoryStore_EmptyStore(t *testing.T) {
	store := NewInMemoryStore()

	results, err := store.Query(context.Background(), []float32{1, 0}, 3, nil)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results from empty store, got %d", len(results))
	}
}
