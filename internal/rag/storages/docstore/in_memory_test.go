package docstore

import (
	"context"
	"testing"

	"github.com/horo-ai/horo/internal/rag/schema"
)

func TestInMemoryDocStore_AddAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryDocStore()

	err := store.Add(ctx, "t1", map[string]*schema.Document{
		"c1": {ID: "c1", Text: "first chunk"},
		"c2": {ID: "c2", Text: "second chunk"},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	got, err := store.Get(ctx, "t1", []string{"c1", "c2", "missing"})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(got))
	}
	if got["c1"].Text != "first chunk" {
		t.Errorf("c1 text = %q", got["c1"].Text)
	}
	if _, ok := got["missing"]; ok {
		t.Error("unknown ID should be skipped, not returned")
	}
}

func TestInMemoryDocStore_TenantIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryDocStore()

	if err := store.Add(ctx, "t1", map[string]*schema.Document{
		"c1": {ID: "c1", Text: "tenant one chunk"},
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Another tenant asking for the same chunk ID gets nothing.
	got, err := store.Get(ctx, "t2", []string{"c1"})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("tenant t2 read tenant t1's chunk: %v", got)
	}
}

func TestInMemoryDocStore_SameIDDifferentTenants(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryDocStore()

	store.Add(ctx, "t1", map[string]*schema.Document{"c1": {ID: "c1", Text: "for t1"}})
	store.Add(ctx, "t2", map[string]*schema.Document{"c1": {ID: "c1", Text: "for t2"}})

	t1, _ := store.Get(ctx, "t1", []string{"c1"})
	t2, _ := store.Get(ctx, "t2", []string{"c1"})
	if t1["c1"].Text != "for t1" || t2["c1"].Text != "for t2" {
		t.Errorf("tenants sharing a chunk ID overwrote each other: %q / %q", t1["c1"].Text, t2["c1"].Text)
	}
}
